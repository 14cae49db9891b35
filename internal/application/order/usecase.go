package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-api/internal/domain/receipt"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// OrderUseCase registro y consulta de pedidos.
type OrderUseCase struct {
	tx       OrderTxRunner
	orders   repository.OrderRepository
	renderer ReceiptRenderer
	log      *logger.Logger
	metrics  OrderMetrics
}

// Option configura dependencias opcionales.
type Option func(*OrderUseCase)

// WithLogger asigna el logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *OrderUseCase) { uc.log = l.Component("order") }
}

// WithMetrics asigna el contador de pedidos.
func WithMetrics(m OrderMetrics) Option {
	return func(uc *OrderUseCase) { uc.metrics = m }
}

// NewOrderUseCase construye el caso de uso. orders se usa para lecturas fuera de transacción.
func NewOrderUseCase(tx OrderTxRunner, orders repository.OrderRepository, renderer ReceiptRenderer, opts ...Option) *OrderUseCase {
	uc := &OrderUseCase{
		tx:       tx,
		orders:   orders,
		renderer: renderer,
		log:      logger.Nop(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// PlaceOrder valida el carrito y persiste cabecera + líneas en una sola transacción.
// Las validaciones ocurren antes de abrir la transacción.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, userID int64, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	lines, total, err := validateOrder(in)
	if err != nil {
		uc.log.Warn().Int64("user_id", userID).Err(err).Msg("pedido inválido")
		return nil, err
	}

	priced := make([]pricing.Line, len(lines))
	for i, l := range lines {
		priced[i] = pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity}
	}
	if expected := pricing.ExpectedTotal(priced); !expected.Equal(total) {
		uc.log.Warn().
			Int64("user_id", userID).
			Str("total", total.StringFixed(2)).
			Str("expected", expected.StringFixed(2)).
			Msg("el total enviado no coincide con subtotal + IVA")
	}

	header := &entity.Order{UserID: userID, Total: total, Status: entity.OrderStatusPending}
	err = uc.tx.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.CreateHeader(ctx, header); err != nil {
			return fmt.Errorf("insert pedido: %w", err)
		}
		for i, l := range lines {
			detail := &entity.OrderDetail{
				OrderID:   header.ID,
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.UnitPrice,
			}
			if err := orderRepo.CreateDetail(ctx, detail); err != nil {
				return fmt.Errorf("insert detalle %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Error().Err(err).Int64("user_id", userID).Msg("error al crear pedido, transacción revertida")
		return nil, domain.ErrOrderPersistence
	}

	uc.metrics.IncOrdersPlaced()
	uc.log.Info().Int64("order_id", header.ID).Int64("user_id", userID).Int("lines", len(lines)).Msg("pedido creado")
	return &dto.CreateOrderResponse{Message: "Pedido creado exitosamente", OrderID: header.ID}, nil
}

func validateOrder(in dto.CreateOrderRequest) ([]entity.OrderLine, decimal.Decimal, error) {
	if len(in.Products) == 0 {
		return nil, decimal.Zero, domain.ErrEmptyCart
	}
	// la columna es NUMERIC(12,2): un importe que redondea a 0,00 no es positivo
	if in.Total == nil || !in.Total.Round(pricing.Places).IsPositive() {
		return nil, decimal.Zero, domain.ErrInvalidTotal
	}
	lines := make([]entity.OrderLine, 0, len(in.Products))
	for i, p := range in.Products {
		switch {
		case p.ProductID == nil || *p.ProductID <= 0:
			return nil, decimal.Zero, fmt.Errorf("%w: línea %d sin producto", domain.ErrInvalidLine, i+1)
		case p.Quantity == nil || *p.Quantity <= 0:
			return nil, decimal.Zero, fmt.Errorf("%w: línea %d con cantidad inválida", domain.ErrInvalidLine, i+1)
		case p.UnitPrice == nil || !p.UnitPrice.Round(pricing.Places).IsPositive():
			return nil, decimal.Zero, fmt.Errorf("%w: línea %d con precio inválido", domain.ErrInvalidLine, i+1)
		}
		lines = append(lines, entity.OrderLine{ProductID: *p.ProductID, Quantity: *p.Quantity, UnitPrice: p.UnitPrice.Round(pricing.Places)})
	}
	return lines, in.Total.Round(pricing.Places), nil
}

// ListOrders pedidos pendientes: todos para admin, los propios para el resto.
func (uc *OrderUseCase) ListOrders(ctx context.Context, requester entity.Identity) ([]dto.OrderResponse, error) {
	var (
		orders []*entity.Order
		err    error
	)
	if requester.IsAdmin() {
		orders, err = uc.orders.ListPending(ctx)
	} else {
		orders, err = uc.orders.ListPendingByUser(ctx, requester.ID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToOrderResponse(o))
	}
	return out, nil
}

// GetOrder pedido pendiente por id. Un no-admin solo ve los propios.
func (uc *OrderUseCase) GetOrder(ctx context.Context, requester entity.Identity, id int64) (*dto.OrderResponse, error) {
	o, err := uc.visibleOrder(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	out := ToOrderResponse(o)
	return &out, nil
}

// GetOrderLines líneas de un pedido pendiente visible para el solicitante.
func (uc *OrderUseCase) GetOrderLines(ctx context.Context, requester entity.Identity, id int64) ([]dto.OrderDetailResponse, error) {
	if _, err := uc.visibleOrder(ctx, requester, id); err != nil {
		return nil, err
	}
	details, err := uc.orders.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.OrderDetailResponse{
			ID:        d.ID,
			OrderID:   d.OrderID,
			Product:   d.ProductName,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return out, nil
}

// GetReceipt arma el ticket desde lo persistido y lo renderiza.
func (uc *OrderUseCase) GetReceipt(ctx context.Context, requester entity.Identity, id int64) ([]byte, error) {
	o, err := uc.visibleOrder(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	details, err := uc.orders.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	r := receipt.Receipt{
		OrderID:       o.ID,
		CustomerName:  o.UserName,
		CustomerEmail: o.UserEmail,
		Date:          o.Date,
		Total:         o.Total,
	}
	for _, d := range details {
		r.Lines = append(r.Lines, receipt.Line{
			Name:      d.ProductName,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	doc, err := uc.renderer.RenderReceipt(r)
	if err != nil {
		uc.log.Error().Err(err).Int64("order_id", id).Msg("error al generar ticket")
		if errors.Is(err, domain.ErrRender) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRender, err)
	}
	return doc, nil
}

func (uc *OrderUseCase) visibleOrder(ctx context.Context, requester entity.Identity, id int64) (*entity.Order, error) {
	o, err := uc.orders.GetPending(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || (!requester.IsAdmin() && o.UserID != requester.ID) {
		return nil, domain.NotFound("pedido no encontrado o ya deshabilitado")
	}
	return o, nil
}

// ToOrderResponse convierte la entidad en DTO.
func ToOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Date:      o.Date,
		Total:     o.Total,
		Status:    o.Status,
		UserName:  o.UserName,
		UserEmail: o.UserEmail,
	}
}
