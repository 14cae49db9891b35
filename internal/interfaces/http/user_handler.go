package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

type userService interface {
	ListActive(ctx context.Context) ([]dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, in dto.UpdateRoleRequest) error
}

// UserHandler administración de usuarios (solo admin).
type UserHandler struct {
	uc userService
}

// NewUserHandler construye el handler.
func NewUserHandler(uc userService) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios activos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UsersResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/get-users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.UsersResponse{Success: true, Users: users})
}

// Delete godoc
// @Summary      Baja lógica de usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/delete-user/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Usuario eliminado correctamente"})
}

// UpdateRole godoc
// @Summary      Cambiar rol de usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateRoleRequest  true  "nuevo role_id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/update-role/{id} [put]
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateRole(c.UserContext(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Rol actualizado correctamente"})
}
