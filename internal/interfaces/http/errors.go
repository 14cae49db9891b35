package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// Los errores específicos van antes que el base que envuelven.
var errorMappings = []errorMapping{
	{domain.ErrEmptyCart, fiber.StatusBadRequest, "EMPTY_CART"},
	{domain.ErrInvalidTotal, fiber.StatusBadRequest, "INVALID_TOTAL"},
	{domain.ErrInvalidLine, fiber.StatusBadRequest, "INVALID_LINE"},
	{domain.ErrValidation, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrLocked, fiber.StatusForbidden, "ACCOUNT_LOCKED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrEmailNotRegistered, fiber.StatusNotFound, "EMAIL_NOT_REGISTERED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrOrderPersistence, fiber.StatusInternalServerError, "ORDER_PERSISTENCE"},
	{domain.ErrRender, fiber.StatusInternalServerError, "RENDER"},
}

// mapError status, código y mensaje visibles para err. Los 5xx nunca exponen el texto del error original.
func mapError(err error) (int, dto.ErrorResponse) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := err.Error()
			if m.status >= fiber.StatusInternalServerError {
				msg = m.target.Error()
			}
			return m.status, dto.ErrorResponse{Code: m.code, Message: msg}
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(fe.Code), Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// writeError responde con el mapeo de err y registra los errores de servidor.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error en la petición")
	}
	return c.Status(status).JSON(body)
}

// ErrorHandler handler de errores de Fiber: rutas inexistentes, cuerpos demasiado grandes y
// errores que los handlers devuelven sin responder.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return writeError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Validation("id inválido")
	}
	return id, nil
}
