package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SalesSummary agregados sobre todos los pedidos; ActiveOrders cuenta solo los pendientes.
type SalesSummary struct {
	TotalSales   decimal.Decimal
	OrderCount   int
	ActiveOrders int
}

// MonthlySales ventas de un mes (1..12).
type MonthlySales struct {
	Month int
	Total decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para el dashboard de ventas.
type AnalyticsRepository interface {
	GetSalesSummary(ctx context.Context) (SalesSummary, error)
	CountProducts(ctx context.Context) (int, error)
	// GetMonthlySales ventas por mes del año dado; los meses sin ventas no aparecen.
	GetMonthlySales(ctx context.Context, year int) ([]MonthlySales, error)
	GetRecentOrders(ctx context.Context, limit int) ([]*entity.Order, error)
}
