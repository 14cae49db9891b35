package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	db      Querier
	builder sq.StatementBuilderType
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db, builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

func (r *ProductRepo) selectProducts() sq.SelectBuilder {
	return r.builder.
		Select("p.id", "p.nombre", "p.descripcion", "p.precio", "p.stock", "p.categoria_id",
			"COALESCE(c.nombre, '')", "COALESCE(p.imagen_url, '')").
		From("productos p").
		LeftJoin("categorias c ON c.id = p.categoria_id")
}

// Create inserta el producto y completa su ID.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, stock, categoria_id, imagen_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRow(ctx, query, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, nullIfEmpty(p.ImageURL)).
		Scan(&p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Validation("la categoría no existe")
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID producto con el nombre de su categoría.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := r.selectProducts().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	p, err := scanProduct(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// List productos, filtrados por categoría si se indica.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	qb := r.selectProducts().OrderBy("p.id")
	if filter.CategoryID != nil {
		qb = qb.Where(sq.Eq{"p.categoria_id": *filter.CategoryID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update reemplaza todos los campos del producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) (bool, error) {
	query := `
		UPDATE productos
		SET nombre = $1, descripcion = $2, precio = $3, stock = $4, categoria_id = $5, imagen_url = $6
		WHERE id = $7`
	tag, err := r.db.Exec(ctx, query, p.Name, p.Description, p.Price, p.Stock, p.CategoryID, nullIfEmpty(p.ImageURL), p.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.Validation("la categoría no existe")
		}
		return false, fmt.Errorf("update producto: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Delete borrado físico. Un producto referenciado por pedidos no se puede borrar.
func (r *ProductRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: el producto tiene pedidos asociados", domain.ErrConflict)
		}
		return false, fmt.Errorf("delete producto: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CategoryName, &p.ImageURL)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
