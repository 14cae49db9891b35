package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
)

func TestPlaceOrder_EnviaTokenYCuerpo(t *testing.T) {
	var gotAuth string
	var gotBody dto.CreateOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pedidos", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Pedido creado","pedidoId":31}`))
	}))
	defer srv.Close()

	total := decimal.RequireFromString("24.20")
	id, qty, price := int64(1), 2, decimal.RequireFromString("10.00")
	req := dto.CreateOrderRequest{
		Total:    &total,
		Products: []dto.OrderLineRequest{{ProductID: &id, Quantity: &qty, UnitPrice: &price}},
	}

	resp, err := New(srv.URL).PlaceOrder(context.Background(), "tok-123", req)
	require.NoError(t, err)
	assert.Equal(t, int64(31), resp.OrderID)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	require.Len(t, gotBody.Products, 1)
	assert.True(t, gotBody.Total.Equal(total))
}

func TestPlaceOrder_ErrorDePersistencia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"ORDER_PERSISTENCE","message":"Error al crear el pedido"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).PlaceOrder(context.Background(), "t", dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderPersistence)
}

func TestLogin_CuentaBloqueada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"code":"ACCOUNT_LOCKED","message":"Cuenta bloqueada"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Login(context.Background(), "a@b.co", "x")
	assert.ErrorIs(t, err, domain.ErrLocked)
}

func TestLogin_Exitoso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in dto.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		assert.Equal(t, "ana@example.com", in.Email)
		_, _ = w.Write([]byte(`{"success":true,"accessToken":"a","refreshToken":"r","user":{"id":5,"nombre":"Ana","email":"ana@example.com","role_id":3}}`))
	}))
	defer srv.Close()

	out, err := New(srv.URL).Login(context.Background(), "ana@example.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, "a", out.AccessToken)
	assert.Equal(t, int64(5), out.User.ID)
}

func TestDecodeError_PorStatus(t *testing.T) {
	assert.ErrorIs(t, decodeError(404, nil), domain.ErrNotFound)
	assert.ErrorIs(t, decodeError(409, []byte(`{"code":"EMAIL_EXISTS"}`)), domain.ErrConflict)
	assert.ErrorIs(t, decodeError(400, []byte(`{"code":"INVALID_LINE"}`)), domain.ErrValidation)
}

func TestPost_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New("http://127.0.0.1:1").Login(ctx, "a@b.co", "x")
	assert.ErrorIs(t, err, context.Canceled)
}
