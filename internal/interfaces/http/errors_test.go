package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tienda-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInvalidLine, fiber.StatusBadRequest, "INVALID_LINE"},
		{domain.Validation("nombre requerido"), fiber.StatusBadRequest, "VALIDATION"},
		{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
		{fmt.Errorf("%w: con pedidos", domain.ErrConflict), fiber.StatusConflict, "CONFLICT"},
		{domain.NotFound("x"), fiber.StatusNotFound, "NOT_FOUND"},
		{fmt.Errorf("%w: boom", domain.ErrRender), fiber.StatusInternalServerError, "RENDER"},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, "HTTP_405"},
		{errors.New("dial tcp: connection refused"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		status, body := mapError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
	}
}

func TestMapError_ServidorNoFiltraDetalle(t *testing.T) {
	_, body := mapError(fmt.Errorf("%w: boom interno", domain.ErrRender))
	assert.NotContains(t, body.Message, "boom")

	_, body = mapError(errors.New("secreto de la base"))
	assert.NotContains(t, body.Message, "secreto")
}
