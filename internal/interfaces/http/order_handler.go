package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type orderService interface {
	PlaceOrder(ctx context.Context, userID int64, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
	ListOrders(ctx context.Context, requester entity.Identity) ([]dto.OrderResponse, error)
	GetOrder(ctx context.Context, requester entity.Identity, id int64) (*dto.OrderResponse, error)
	GetOrderLines(ctx context.Context, requester entity.Identity, id int64) ([]dto.OrderDetailResponse, error)
	GetReceipt(ctx context.Context, requester entity.Identity, id int64) ([]byte, error)
}

// OrderHandler pedidos.
type OrderHandler struct {
	uc orderService
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc orderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Cabecera y líneas en una sola transacción.
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "total y productos"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.PlaceOrder(c.UserContext(), id.ID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos pendientes
// @Description  Admin ve todos; cliente solo los propios.
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrdersResponse
// @Router       /api/pedidos [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return writeError(c, domain.ErrUnauthorized)
	}
	orders, err := h.uc.ListOrders(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OrdersResponse{Success: true, Orders: orders})
}

// GetByID godoc
// @Summary      Obtener pedido pendiente
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	requester, orderID, err := h.target(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetOrder(c.UserContext(), requester, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Details godoc
// @Summary      Líneas de un pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {array}   dto.OrderDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/detalles [get]
func (h *OrderHandler) Details(c *fiber.Ctx) error {
	requester, orderID, err := h.target(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetOrderLines(c.UserContext(), requester, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ticket godoc
// @Summary      Ticket de compra en PDF
// @Tags         pedidos
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/ticket [get]
func (h *OrderHandler) Ticket(c *fiber.Ctx) error {
	requester, orderID, err := h.target(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.GetReceipt(c.UserContext(), requester, orderID)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="ticket-%d.pdf"`, orderID))
	return c.Send(pdf)
}

func (h *OrderHandler) target(c *fiber.Ctx) (entity.Identity, int64, error) {
	requester, ok := GetIdentity(c)
	if !ok {
		return entity.Identity{}, 0, domain.ErrUnauthorized
	}
	id, err := paramID(c)
	if err != nil {
		return entity.Identity{}, 0, err
	}
	return requester, id, nil
}
