package entity

// Role rol del usuario con su código entero canónico (tabla roles).
type Role int

// Roles válidos. Toda verificación de permisos usa este tipo, nunca literales.
const (
	RoleAdmin    Role = 1
	RoleSeller   Role = 2
	RoleCustomer Role = 3
)

// DefaultRole rol asignado cuando el registro no especifica uno.
const DefaultRole = RoleCustomer

// Valid indica si el código pertenece al conjunto fijo de roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller || r == RoleCustomer
}

// String nombre del rol tal como está en la tabla roles.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleSeller:
		return "vendedor"
	case RoleCustomer:
		return "cliente"
	default:
		return "desconocido"
	}
}

// In indica si el rol está entre los permitidos.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
