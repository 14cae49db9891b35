package dto

import "github.com/shopspring/decimal"

// MonthlySalesDTO ventas de un mes.
type MonthlySalesDTO struct {
	Month string          `json:"mes"` // "ene", "feb", ...
	Total decimal.Decimal `json:"total"`
}

// DashboardResponse métricas del dashboard de ventas.
type DashboardResponse struct {
	TotalSales   decimal.Decimal   `json:"total_ventas"`
	OrderCount   int               `json:"total_pedidos"`
	ActiveOrders int               `json:"pedidos_activos"`
	ProductCount int               `json:"total_productos"`
	MonthlySales []MonthlySalesDTO `json:"ventas_por_mes"`
	RecentOrders []OrderResponse   `json:"ultimos_pedidos"`
}
