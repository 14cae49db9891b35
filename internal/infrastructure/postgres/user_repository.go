package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db Querier) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, nombre, email, contraseña_hash, role_id, activo, intentos_fallidos, bloqueado_hasta, fecha_registro`

// Create persiste un nuevo usuario activo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (nombre, email, contraseña_hash, role_id, activo)
		VALUES ($1, $2, $3, $4, TRUE)
		RETURNING id, fecha_registro`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, int(user.Role)).
		Scan(&user.ID, &user.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrRoleNotFound
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	user.Active = true
	return nil
}

// GetByID obtiene un usuario activo por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id = $1 AND activo = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id), "get usuario by id")
}

// GetByEmail obtiene un usuario activo por email (sin distinguir mayúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE lower(email) = lower($1) AND activo = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, email), "get usuario by email")
}

// ListActive usuarios activos ordenados por id.
func (r *UserRepo) ListActive(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE activo = TRUE ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// UpdateRole cambia el rol de un usuario activo.
func (r *UserRepo) UpdateRole(ctx context.Context, id int64, role entity.Role) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE usuarios SET role_id = $1 WHERE id = $2 AND activo = TRUE`, int(role), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrRoleNotFound
		}
		return false, fmt.Errorf("update role: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SoftDelete desactiva el usuario.
func (r *UserRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE usuarios SET activo = FALSE WHERE id = $1 AND activo = TRUE`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete usuario: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RegisterFailedAttempt incrementa el contador en un único UPDATE (sin carrera entre logins
// concurrentes) y fija bloqueado_hasta cuando el nuevo valor alcanza threshold.
func (r *UserRepo) RegisterFailedAttempt(ctx context.Context, id int64, threshold int, lockUntil time.Time) (int, error) {
	query := `
		UPDATE usuarios
		SET intentos_fallidos = intentos_fallidos + 1,
		    bloqueado_hasta = CASE WHEN intentos_fallidos + 1 >= $2 THEN $3 ELSE bloqueado_hasta END
		WHERE id = $1
		RETURNING intentos_fallidos`
	var attempts int
	if err := r.db.QueryRow(ctx, query, id, threshold, lockUntil).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("register failed attempt: %w", err)
	}
	return attempts, nil
}

// ResetFailedAttempts pone el contador en 0 y limpia el bloqueo.
func (r *UserRepo) ResetFailedAttempts(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE usuarios SET intentos_fallidos = 0, bloqueado_hasta = NULL WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset failed attempts: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u    entity.User
		role int
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.Active,
		&u.FailedAttempts, &u.LockedUntil, &u.RegisteredAt)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}
