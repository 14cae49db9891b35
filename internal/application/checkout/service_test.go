package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/cart"
	"github.com/jhoicas/tienda-api/internal/domain/receipt"
)

type fakeAPI struct {
	calls int
	got   dto.CreateOrderRequest
	token string
	err   error
}

func (f *fakeAPI) PlaceOrder(_ context.Context, token string, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	f.calls++
	f.got = in
	f.token = token
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CreateOrderResponse{Message: "Pedido creado exitosamente", OrderID: 77}, nil
}

type fakeRenderer struct {
	got receipt.Receipt
	err error
}

func (r *fakeRenderer) RenderReceipt(rc receipt.Receipt) ([]byte, error) {
	r.got = rc
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF"), nil
}

var session = checkout.Session{
	AccessToken: "tok",
	User:        dto.UserPublic{ID: 10, Name: "Alice", Email: "alice@example.com", RoleID: 3},
}

func aliceCart() *cart.Cart {
	c := cart.New()
	it := cart.Item{ProductID: 7, Title: "Playera negra", UnitPrice: decimal.RequireFromString("10.00")}
	c.AddItem(it)
	c.AddItem(it)
	return c
}

func TestCheckout_CarritoVacioNoLlamaALaAPI(t *testing.T) {
	api := &fakeAPI{}
	svc := checkout.NewService(api, &fakeRenderer{}, nil)
	_, err := svc.Checkout(context.Background(), session, cart.New())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Zero(t, api.calls)
}

func TestCheckout_Exitoso(t *testing.T) {
	api := &fakeAPI{}
	rnd := &fakeRenderer{}
	c := aliceCart()

	res, err := checkout.NewService(api, rnd, nil).Checkout(context.Background(), session, c)
	require.NoError(t, err)

	assert.Equal(t, "tok", api.token)
	require.NotNil(t, api.got.Total)
	assert.Equal(t, "24.20", api.got.Total.StringFixed(2))
	require.Len(t, api.got.Products, 1)
	assert.Equal(t, int64(7), *api.got.Products[0].ProductID)
	assert.Equal(t, 2, *api.got.Products[0].Quantity)

	assert.Equal(t, int64(77), res.OrderID)
	assert.Equal(t, []byte("%PDF"), res.Receipt)
	assert.Equal(t, "Alice", rnd.got.CustomerName)
	assert.Equal(t, "20.00", rnd.got.Lines[0].Subtotal.StringFixed(2))
	assert.True(t, c.IsEmpty(), "el carrito se vacía tras la confirmación")
}

func TestCheckout_FalloDeLaAPIConservaCarrito(t *testing.T) {
	api := &fakeAPI{err: errors.New("connection refused")}
	rnd := &fakeRenderer{}
	c := aliceCart()

	_, err := checkout.NewService(api, rnd, nil).Checkout(context.Background(), session, c)
	require.Error(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Items()[0].Quantity)
	assert.Empty(t, rnd.got.Lines, "no se genera ticket")
}

func TestCheckout_TicketFallaTrasConfirmacion(t *testing.T) {
	c := aliceCart()
	res, err := checkout.NewService(&fakeAPI{}, &fakeRenderer{err: errors.New("disco lleno")}, nil).
		Checkout(context.Background(), session, c)

	assert.ErrorIs(t, err, domain.ErrRender)
	require.NotNil(t, res)
	assert.Equal(t, int64(77), res.OrderID)
	assert.Nil(t, res.Receipt)
	assert.True(t, c.IsEmpty(), "el pedido ya existe: el carrito no debe reenviarse")
}
