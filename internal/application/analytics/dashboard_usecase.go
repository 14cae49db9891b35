// Package analytics contiene el caso de uso del dashboard de ventas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/order"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

const dashboardRecentOrders = 5 // pedidos en el widget "últimos pedidos"

// DashboardUseCase genera las métricas del dashboard de ventas del administrador.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetSummary construye el DashboardResponse.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesSummary          → total vendido, pedidos, pedidos activos
//  2. CountProducts            → productos en catálogo
//  3. GetMonthlySales(año)     → ventas por mes (12 buckets)
//  4. GetRecentOrders(5)       → últimos pedidos
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now()

	type summaryResult struct {
		summary repository.SalesSummary
		err     error
	}
	type countResult struct {
		n   int
		err error
	}
	type monthlyResult struct {
		months []repository.MonthlySales
		err    error
	}
	type recentResult struct {
		orders []*entity.Order
		err    error
	}

	summaryCh := make(chan summaryResult, 1)
	productsCh := make(chan countResult, 1)
	monthlyCh := make(chan monthlyResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		s, err := uc.analyticsRepo.GetSalesSummary(ctx)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		n, err := uc.analyticsRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetMonthlySales(ctx, now.Year())
		monthlyCh <- monthlyResult{m, err}
	}()
	go func() {
		o, err := uc.analyticsRepo.GetRecentOrders(ctx, dashboardRecentOrders)
		recentCh <- recentResult{o, err}
	}()

	summary := <-summaryCh
	products := <-productsCh
	monthly := <-monthlyCh
	recent := <-recentCh

	if summary.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de ventas: %w", summary.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: conteo de productos: %w", products.err)
	}
	if monthly.err != nil {
		return nil, fmt.Errorf("dashboard: ventas por mes: %w", monthly.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: últimos pedidos: %w", recent.err)
	}

	out := &dto.DashboardResponse{
		TotalSales:   summary.summary.TotalSales.Round(2),
		OrderCount:   summary.summary.OrderCount,
		ActiveOrders: summary.summary.ActiveOrders,
		ProductCount: products.n,
		MonthlySales: monthBuckets(monthly.months),
		RecentOrders: make([]dto.OrderResponse, 0, len(recent.orders)),
	}
	for _, o := range recent.orders {
		out.RecentOrders = append(out.RecentOrders, order.ToOrderResponse(o))
	}
	return out, nil
}

var monthAbbr = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// monthBuckets devuelve siempre 12 meses; los que no tienen ventas quedan en cero.
func monthBuckets(rows []repository.MonthlySales) []dto.MonthlySalesDTO {
	out := make([]dto.MonthlySalesDTO, 12)
	for i := range out {
		out[i] = dto.MonthlySalesDTO{Month: monthAbbr[i], Total: decimal.Zero}
	}
	for _, r := range rows {
		if r.Month >= 1 && r.Month <= 12 {
			out[r.Month-1].Total = out[r.Month-1].Total.Add(r.Total).Round(2)
		}
	}
	return out
}
