// Package apiclient cliente REST de la API de la tienda, usado por el checkout de línea de comandos.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

const defaultTimeout = 15 * time.Second

var _ checkout.OrderAPI = (*Client)(nil)

// Client habla con la API vía fiber.Agent.
type Client struct {
	baseURL string
	timeout time.Duration
}

// Option configura el cliente.
type Option func(*Client)

// WithTimeout límite por petición cuando el contexto no trae deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New construye el cliente; baseURL sin "/" final, p.ej. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: defaultTimeout}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login POST /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.post(ctx, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceOrder POST /api/pedidos con el access token del cliente.
func (c *Client) PlaceOrder(ctx context.Context, accessToken string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	var out dto.CreateOrderResponse
	if err := c.post(ctx, "/api/pedidos", accessToken, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	a := fiber.Post(c.baseURL + path).JSON(body).Timeout(timeout)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	code, resp, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("POST %s: %w", path, errors.Join(errs...))
	}
	if code < 200 || code > 299 {
		return decodeError(code, resp)
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return fmt.Errorf("POST %s: respuesta inválida: %w", path, err)
	}
	return nil
}

// decodeError traduce la respuesta de error de la API a los errores de dominio.
func decodeError(status int, body []byte) error {
	var e dto.ErrorResponse
	_ = json.Unmarshal(body, &e)
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}

	var base error
	switch e.Code {
	case "EMPTY_CART":
		base = domain.ErrEmptyCart
	case "INVALID_TOTAL":
		base = domain.ErrInvalidTotal
	case "INVALID_LINE":
		base = domain.ErrInvalidLine
	case "INVALID_CREDENTIALS":
		base = domain.ErrInvalidCredentials
	case "ACCOUNT_LOCKED":
		base = domain.ErrLocked
	case "EMAIL_NOT_REGISTERED":
		base = domain.ErrEmailNotRegistered
	case "ORDER_PERSISTENCE":
		base = domain.ErrOrderPersistence
	default:
		base = byStatus(status)
	}
	return fmt.Errorf("%w: %s", base, msg)
}

func byStatus(status int) error {
	switch status {
	case fiber.StatusBadRequest:
		return domain.ErrValidation
	case fiber.StatusUnauthorized:
		return domain.ErrUnauthorized
	case fiber.StatusForbidden:
		return domain.ErrForbidden
	case fiber.StatusNotFound:
		return domain.ErrNotFound
	case fiber.StatusConflict:
		return domain.ErrConflict
	default:
		return fmt.Errorf("error del servidor (HTTP %d)", status)
	}
}
