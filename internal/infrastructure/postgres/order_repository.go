package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Con un pgx.Tx como Querier participa de la transacción del TxRunner.
type OrderRepo struct {
	db Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(db Querier) *OrderRepo {
	return &OrderRepo{db: db}
}

// CreateHeader inserta la cabecera con fecha now() y estado pendiente.
func (r *OrderRepo) CreateHeader(ctx context.Context, o *entity.Order) error {
	if o.Status == "" {
		o.Status = entity.OrderStatusPending
	}
	query := `
		INSERT INTO pedidos (usuario_id, fecha, total, estado)
		VALUES ($1, NOW(), $2, $3)
		RETURNING id, fecha`
	if err := r.db.QueryRow(ctx, query, o.UserID, o.Total, o.Status).Scan(&o.ID, &o.Date); err != nil {
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// CreateDetail inserta una línea; el subtotal lo calcula la columna generada.
func (r *OrderRepo) CreateDetail(ctx context.Context, d *entity.OrderDetail) error {
	query := `
		INSERT INTO pedido_detalles (pedido_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, query, d.OrderID, d.ProductID, d.Quantity, d.UnitPrice); err != nil {
		return fmt.Errorf("insert pedido_detalle: %w", err)
	}
	return nil
}

const orderWithOwner = `
	SELECT p.id, p.usuario_id, p.fecha, p.total, p.estado, u.nombre, u.email
	FROM pedidos p
	JOIN usuarios u ON p.usuario_id = u.id`

// ListPending todos los pedidos pendientes con nombre y email del dueño.
func (r *OrderRepo) ListPending(ctx context.Context) ([]*entity.Order, error) {
	return r.list(ctx, orderWithOwner+` WHERE p.estado = $1 ORDER BY p.id`, entity.OrderStatusPending)
}

// ListPendingByUser pedidos pendientes de un usuario.
func (r *OrderRepo) ListPendingByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	return r.list(ctx, orderWithOwner+` WHERE p.usuario_id = $1 AND p.estado = $2 ORDER BY p.id`, userID, entity.OrderStatusPending)
}

// GetPending pedido pendiente por id; (nil, nil) si no existe.
func (r *OrderRepo) GetPending(ctx context.Context, id int64) (*entity.Order, error) {
	row := r.db.QueryRow(ctx, orderWithOwner+` WHERE p.id = $1 AND p.estado = $2`, id, entity.OrderStatusPending)
	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return o, nil
}

// GetDetails líneas del pedido con el nombre del producto.
func (r *OrderRepo) GetDetails(ctx context.Context, orderID int64) ([]*entity.OrderDetail, error) {
	query := `
		SELECT pd.id, pd.pedido_id, pd.producto_id, p.nombre, pd.cantidad, pd.precio_unitario, pd.subtotal
		FROM pedido_detalles pd
		JOIN productos p ON pd.producto_id = p.id
		WHERE pd.pedido_id = $1
		ORDER BY pd.id`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list pedido_detalles: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderDetail
	for rows.Next() {
		var d entity.OrderDetail
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.ProductName, &d.Quantity, &d.UnitPrice, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan pedido_detalle: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Date, &o.Total, &o.Status, &o.UserName, &o.UserEmail); err != nil {
		return nil, err
	}
	return &o, nil
}
