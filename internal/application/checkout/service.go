// Package checkout implementa el checkout del cliente: carrito → pedido en la API → ticket → carrito vacío.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/cart"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-api/internal/domain/receipt"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// OrderAPI llamada autenticada al servicio de pedidos.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, accessToken string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
}

// ReceiptRenderer genera el documento del ticket.
type ReceiptRenderer interface {
	RenderReceipt(r receipt.Receipt) ([]byte, error)
}

// Session sesión iniciada del cliente.
type Session struct {
	AccessToken string
	User        dto.UserPublic
}

// Result pedido confirmado y su ticket.
type Result struct {
	OrderID int64
	Totals  pricing.Breakdown
	Receipt []byte // nil si el ticket no se pudo generar
}

// Service orquesta el checkout del lado del cliente.
type Service struct {
	api      OrderAPI
	renderer ReceiptRenderer
	log      *logger.Logger
	now      func() time.Time
}

// NewService construye el servicio.
func NewService(api OrderAPI, renderer ReceiptRenderer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, renderer: renderer, log: log.Component("checkout"), now: time.Now}
}

// Checkout envía el carrito como pedido. El carrito solo se vacía cuando la API confirma el pedido;
// ante cualquier error de la llamada queda intacto para reintentar.
// Si el pedido se confirmó pero el ticket falla, el carrito se vacía igual y se devuelve el
// Result junto con un error que envuelve domain.ErrRender.
func (s *Service) Checkout(ctx context.Context, session Session, c *cart.Cart) (*Result, error) {
	if c.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	totals := c.Totals()
	items := c.Items()

	req := dto.CreateOrderRequest{Total: &totals.Total}
	for _, it := range items {
		id, qty, price := it.ProductID, it.Quantity, it.UnitPrice
		req.Products = append(req.Products, dto.OrderLineRequest{ProductID: &id, Quantity: &qty, UnitPrice: &price})
	}

	resp, err := s.api.PlaceOrder(ctx, session.AccessToken, req)
	if err != nil {
		s.log.Warn().Err(err).Int("items", len(items)).Msg("checkout fallido, el carrito se conserva")
		return nil, err
	}

	res := &Result{OrderID: resp.OrderID, Totals: totals}
	r := receipt.Receipt{
		OrderID:       resp.OrderID,
		CustomerName:  session.User.Name,
		CustomerEmail: session.User.Email,
		Date:          s.now(),
		Total:         totals.Total,
	}
	for _, it := range items {
		r.Lines = append(r.Lines, receipt.Line{
			Name:      it.Title,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  pricing.LineTotal(it.UnitPrice, it.Quantity),
		})
	}
	doc, renderErr := s.renderer.RenderReceipt(r)
	c.Clear()

	if renderErr != nil {
		s.log.Error().Err(renderErr).Int64("order_id", resp.OrderID).Msg("pedido confirmado pero el ticket falló")
		if !errors.Is(renderErr, domain.ErrRender) {
			renderErr = fmt.Errorf("%w: %v", domain.ErrRender, renderErr)
		}
		return res, renderErr
	}
	res.Receipt = doc
	s.log.Info().Int64("order_id", resp.OrderID).Msg("checkout completado")
	return res, nil
}
