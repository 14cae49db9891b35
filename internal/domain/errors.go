package domain

import (
	"errors"
	"fmt"
)

// Errores base del dominio (sin dependencias externas). La capa HTTP los traduce a status codes.
var (
	ErrValidation         = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrInvalidCredentials = errors.New("contraseña incorrecta")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrLocked             = errors.New("cuenta bloqueada temporalmente")
	ErrOrderPersistence   = errors.New("no se pudo registrar el pedido")
	ErrRender             = errors.New("no se pudo generar el ticket")
)

// Errores específicos: envuelven un error base para que errors.Is funcione con ambos.
var (
	ErrEmptyCart          = fmt.Errorf("%w: el carrito está vacío", ErrValidation)
	ErrInvalidTotal       = fmt.Errorf("%w: el total debe ser un número positivo", ErrValidation)
	ErrInvalidLine        = fmt.Errorf("%w: línea de pedido inválida", ErrValidation)
	ErrEmailNotRegistered = fmt.Errorf("%w: email no registrado", ErrNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("%w: el email ya está registrado", ErrConflict)
	ErrRoleNotFound       = fmt.Errorf("%w: el rol no existe", ErrValidation)
)

// Validation construye un error de validación con mensaje propio.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound construye un error de recurso inexistente con mensaje propio.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}
