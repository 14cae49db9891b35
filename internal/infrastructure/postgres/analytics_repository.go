package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepo struct {
	db Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(db Querier) *AnalyticsRepo {
	return &AnalyticsRepo{db: db}
}

// GetSalesSummary total vendido y cantidad de pedidos (todos), más los pedidos pendientes.
func (r *AnalyticsRepo) GetSalesSummary(ctx context.Context) (repository.SalesSummary, error) {
	const query = `
	SELECT
	    COALESCE(SUM(total), 0)                     AS total_ventas,
	    COUNT(*)                                    AS total_pedidos,
	    COUNT(*) FILTER (WHERE estado = $1)         AS pedidos_activos
	FROM pedidos`

	var s repository.SalesSummary
	if err := r.db.QueryRow(ctx, query, entity.OrderStatusPending).Scan(&s.TotalSales, &s.OrderCount, &s.ActiveOrders); err != nil {
		return repository.SalesSummary{}, fmt.Errorf("resumen de ventas: %w", err)
	}
	return s, nil
}

// CountProducts productos en catálogo.
func (r *AnalyticsRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("contar productos: %w", err)
	}
	return n, nil
}

// GetMonthlySales ventas agrupadas por mes del año indicado.
func (r *AnalyticsRepo) GetMonthlySales(ctx context.Context, year int) ([]repository.MonthlySales, error) {
	const query = `
	SELECT EXTRACT(MONTH FROM fecha)::INT AS mes, SUM(total) AS total
	FROM pedidos
	WHERE EXTRACT(YEAR FROM fecha)::INT = $1
	GROUP BY mes
	ORDER BY mes`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("ventas mensuales: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlySales
	for rows.Next() {
		var m repository.MonthlySales
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scan ventas mensuales: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetRecentOrders últimos pedidos (cualquier estado) con el dueño.
func (r *AnalyticsRepo) GetRecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	rows, err := r.db.Query(ctx, orderWithOwner+` ORDER BY p.fecha DESC, p.id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("pedidos recientes: %w", err)
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
