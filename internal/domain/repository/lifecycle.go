package repository

import "context"

// SoftDeletable entidades que se desactivan (activo=false) y quedan fuera de las consultas por defecto.
// Devuelve false si la fila no existe o ya estaba inactiva.
type SoftDeletable interface {
	SoftDelete(ctx context.Context, id int64) (bool, error)
}

// HardDeletable entidades que se eliminan físicamente. Devuelve false si la fila no existe.
type HardDeletable interface {
	Delete(ctx context.Context, id int64) (bool, error)
}
