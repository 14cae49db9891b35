package dto

import "time"

// UserPublic proyección pública del usuario (nunca incluye el hash).
type UserPublic struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Email  string `json:"email"`
	RoleID int    `json:"role_id"`
}

// UserResponse usuario en listados de administración.
type UserResponse struct {
	UserPublic
	RegisteredAt time.Time `json:"fecha_registro"`
}

// UsersResponse listado de usuarios activos.
type UsersResponse struct {
	Success bool           `json:"success"`
	Users   []UserResponse `json:"users"`
}

// RegisterResponse usuario creado.
type RegisterResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    UserPublic `json:"user"`
}

// UpdateRoleRequest nuevo rol de un usuario.
type UpdateRoleRequest struct {
	RoleID int `json:"role_id" validate:"required"`
}
