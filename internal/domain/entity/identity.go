package entity

// Identity identidad decodificada de un access token.
type Identity struct {
	ID    int64
	Email string
	Role  Role
}

// IsAdmin indica si la identidad tiene rol administrador.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
