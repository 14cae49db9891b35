package entity

import "time"

// Política de bloqueo por intentos fallidos.
const (
	MaxFailedAttempts = 5
	LockoutWindow     = 15 * time.Minute
)

// User representa un usuario de la tienda.
type User struct {
	ID             int64
	Name           string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Role           Role
	Active         bool
	FailedAttempts int
	LockedUntil    *time.Time // nil si nunca se bloqueó
	RegisteredAt   time.Time
}

// IsLocked indica si el bloqueo sigue vigente en now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// LockExpired indica que hubo un bloqueo y ya venció; el contador debe reiniciarse antes de evaluar el intento.
func (u *User) LockExpired(now time.Time) bool {
	return u.LockedUntil != nil && !u.LockedUntil.After(now)
}
