package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

type authService interface {
	Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserPublic, error)
	RegisterCustomer(ctx context.Context, in dto.RegisterRequest) (*dto.UserPublic, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
}

// AuthHandler registro, login, refresh y logout.
type AuthHandler struct {
	uc           authService
	cookieTTL    time.Duration
	secureCookie bool
}

// NewAuthHandler construye el handler. cookieTTL es la vida de la cookie "token" (la del access token).
func NewAuthHandler(uc authService, cookieTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieTTL: cookieTTL, secureCookie: secureCookie}
}

// Register godoc
// @Summary      Registrar usuario con rol explícito
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nombre, email, contraseña, role_id"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	return h.register(c, h.uc.Register)
}

// RegisterClient godoc
// @Summary      Registro de cliente
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nombre, email, contraseña"
// @Success      201   {object}  dto.RegisterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register-client [post]
func (h *AuthHandler) RegisterClient(c *fiber.Ctx) error {
	return h.register(c, h.uc.RegisterCustomer)
}

func (h *AuthHandler) register(c *fiber.Ctx, fn func(context.Context, dto.RegisterRequest) (*dto.UserPublic, error)) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := fn(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Success: true,
		Message: "Usuario registrado exitosamente",
		User:    *user,
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve access y refresh token; además deja el access token en la cookie httpOnly "token".
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, contraseña"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     TokenCookie,
		Value:    out.AccessToken,
		Path:     "/",
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh token"
// @Success      200   {object}  dto.RefreshResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Refresh(c.UserContext(), in.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra la cookie "token" y revoca el refresh token si se envía.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogoutRequest  false  "refresh token opcional"
// @Success      200   {object}  dto.MessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.LogoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	identity, ok := GetIdentity(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}
	if err := h.uc.Logout(c.UserContext(), identity.ID, in.Token); err != nil {
		return writeError(c, err)
	}
	c.ClearCookie(TokenCookie)
	return c.JSON(dto.MessageResponse{Success: true, Message: "Sesión cerrada"})
}
