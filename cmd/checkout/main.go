// checkout envía un carrito guardado como pedido y escribe el ticket en PDF.
//
// Uso: go run ./cmd/checkout carrito.json [ticket.pdf]
// El carrito es un arreglo JSON de {id, title, price, quantity, image}.
// Variables: TIENDA_API_URL, TIENDA_EMAIL, TIENDA_PASSWORD (más las STORE_* del ticket).
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jhoicas/tienda-api/internal/application/checkout"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/cart"
	"github.com/jhoicas/tienda-api/internal/infrastructure/apiclient"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: checkout carrito.json [ticket.pdf]")
		os.Exit(2)
	}
	cartPath := os.Args[1]
	outPath := "ticket-compra.pdf"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	_ = godotenv.Load()
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("TIENDA_API_URL", "http://localhost:8080")
	v.SetDefault("STORE_NAME", "TIENDA XYZ")
	v.SetDefault("STORE_ADDRESS", "Calle 123")

	log := logger.New(logger.Config{Env: "development", Level: "info"}).Component("checkout")

	c, err := loadCart(cartPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cartPath).Msg("leer carrito")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := apiclient.New(v.GetString("TIENDA_API_URL"))
	login, err := api.Login(ctx, v.GetString("TIENDA_EMAIL"), v.GetString("TIENDA_PASSWORD"))
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar sesión")
	}

	svc := checkout.NewService(api, infrapdf.NewReceiptGenerator(infrapdf.Store{
		Name:    v.GetString("STORE_NAME"),
		Address: v.GetString("STORE_ADDRESS"),
		Clabe:   v.GetString("STORE_CLABE"),
		Email:   v.GetString("STORE_EMAIL"),
	}), log)

	res, err := svc.Checkout(ctx, checkout.Session{AccessToken: login.AccessToken, User: login.User}, c)
	if err != nil && !errors.Is(err, domain.ErrRender) {
		log.Fatal().Err(err).Msg("registrar pedido")
	}
	log.Info().
		Int64("pedido", res.OrderID).
		Str("subtotal", res.Totals.Subtotal.StringFixed(2)).
		Str("iva", res.Totals.Tax.StringFixed(2)).
		Str("total", res.Totals.Total.StringFixed(2)).
		Msg("pedido registrado")
	if res.Receipt == nil {
		log.Warn().Err(err).Msg("el pedido quedó registrado pero no se generó el ticket")
		return
	}
	if err := os.WriteFile(outPath, res.Receipt, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", outPath).Msg("guardar ticket")
	}
	log.Info().Str("path", outPath).Msg("ticket guardado")
}

// loadCart reconstruye el carrito respetando las cantidades guardadas.
func loadCart(path string) (*cart.Cart, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("carrito inválido: %w", err)
	}
	c := cart.New()
	for _, it := range items {
		for i := 0; i < max(it.Quantity, 1); i++ {
			c.AddItem(it)
		}
	}
	return c, nil
}
