package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	db Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(db Querier) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.db.QueryRow(ctx, `INSERT INTO categorias (nombre, activo) VALUES ($1, TRUE) RETURNING id`, c.Name).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert categoria: %w", err)
	}
	c.Active = true
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.db.QueryRow(ctx, `SELECT id, nombre, activo FROM categorias WHERE id = $1 AND activo = TRUE`, id).
		Scan(&c.ID, &c.Name, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre, activo FROM categorias WHERE activo = TRUE ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Active); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE categorias SET nombre = $1 WHERE id = $2 AND activo = TRUE`, c.Name, c.ID)
	if err != nil {
		return false, fmt.Errorf("update categoria: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDelete deshabilita la categoría; sus productos se conservan.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE categorias SET activo = FALSE WHERE id = $1 AND activo = TRUE`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete categoria: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
