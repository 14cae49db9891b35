package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestAnalyticsRepo_GetSalesSummary_FiltraPendientes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE estado = $1)`)).
		WithArgs(entity.OrderStatusPending).
		WillReturnError(errors.New("conexión perdida"))

	_, err = NewAnalyticsRepository(mock).GetSalesSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resumen de ventas")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_CountProducts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM productos`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	n, err := NewAnalyticsRepository(mock).CountProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_GetMonthlySales_AgrupaPorMesDelAño(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`(?s)EXTRACT\(MONTH FROM fecha\)::INT AS mes.*WHERE EXTRACT\(YEAR FROM fecha\)::INT = \$1.*GROUP BY mes.*ORDER BY mes`).
		WithArgs(2026).
		WillReturnRows(pgxmock.NewRows([]string{"mes", "total"}))

	months, err := NewAnalyticsRepository(mock).GetMonthlySales(context.Background(), 2026)
	require.NoError(t, err)
	assert.Empty(t, months)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepo_GetRecentOrders_Limite(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN usuarios u ON p.usuario_id = u.id ORDER BY p.fecha DESC, p.id DESC LIMIT $1`)).
		WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "usuario_id", "fecha", "total", "estado", "nombre", "email"}))

	orders, err := NewAnalyticsRepository(mock).GetRecentOrders(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}
