package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var productCols = []string{"id", "nombre", "descripcion", "precio", "stock", "categoria_id", "categoria", "imagen_url"}

func TestProductRepo_List_FiltraPorCategoria(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM productos p LEFT JOIN categorias c ON c\.id = p\.categoria_id WHERE p\.categoria_id = \$1 ORDER BY p\.id`).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(productCols))

	cat := int64(4)
	list, err := NewProductRepository(mock).List(context.Background(), repository.ProductFilter{CategoryID: &cat})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_List_SinFiltro(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM productos p LEFT JOIN categorias c ON c\.id = p\.categoria_id ORDER BY p\.id`).
		WillReturnRows(pgxmock.NewRows(productCols))

	_, err = NewProductRepository(mock).List(context.Background(), repository.ProductFilter{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Delete_ConPedidosEsConflicto(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM productos`).
		WithArgs(int64(2)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	_, err = NewProductRepository(mock).Delete(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
