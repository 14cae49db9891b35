package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ────────────────────────────────────────────────────────────────────────────
// Fakes
// ────────────────────────────────────────────────────────────────────────────

type memCategories struct {
	rows map[int64]*entity.Category
}

func (m *memCategories) Create(_ context.Context, c *entity.Category) error {
	c.ID = int64(len(m.rows) + 1)
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memCategories) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	c, ok := m.rows[id]
	if !ok || !c.Active {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategories) ListActive(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for id := int64(1); id <= int64(len(m.rows)); id++ {
		if c := m.rows[id]; c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) Update(_ context.Context, c *entity.Category) (bool, error) {
	cur, ok := m.rows[c.ID]
	if !ok || !cur.Active {
		return false, nil
	}
	cur.Name = c.Name
	return true, nil
}

func (m *memCategories) SoftDelete(_ context.Context, id int64) (bool, error) {
	cur, ok := m.rows[id]
	if !ok || !cur.Active {
		return false, nil
	}
	cur.Active = false
	return true, nil
}

type memProducts struct {
	rows   map[int64]*entity.Product
	nextID int64
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	m.nextID++
	p.ID = m.nextID
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for id := int64(1); id <= m.nextID; id++ {
		p, ok := m.rows[id]
		if !ok {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) (bool, error) {
	if _, ok := m.rows[p.ID]; !ok {
		return false, nil
	}
	cp := *p
	m.rows[p.ID] = &cp
	return true, nil
}

func (m *memProducts) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

type memUsers struct {
	rows map[int64]*entity.User
}

func (m *memUsers) Create(context.Context, *entity.User) error               { return nil }
func (m *memUsers) GetByID(context.Context, int64) (*entity.User, error)     { return nil, nil }
func (m *memUsers) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (m *memUsers) ResetFailedAttempts(context.Context, int64) error         { return nil }
func (m *memUsers) RegisterFailedAttempt(context.Context, int64, int, time.Time) (int, error) {
	return 0, nil
}

func (m *memUsers) ListActive(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for id := int64(1); id <= int64(len(m.rows)); id++ {
		if u := m.rows[id]; u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) UpdateRole(_ context.Context, id int64, role entity.Role) (bool, error) {
	u, ok := m.rows[id]
	if !ok || !u.Active {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (m *memUsers) SoftDelete(_ context.Context, id int64) (bool, error) {
	u, ok := m.rows[id]
	if !ok || !u.Active {
		return false, nil
	}
	u.Active = false
	return true, nil
}

func productRequest(categoryID int64, price string, stock int) dto.ProductRequest {
	p := decimal.RequireFromString(price)
	return dto.ProductRequest{
		Name:        "Playera negra",
		Description: "100% algodón",
		Price:       &p,
		Stock:       &stock,
		CategoryID:  &categoryID,
		ImageURL:    "/img/playera.png",
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Productos
// ────────────────────────────────────────────────────────────────────────────

func newProductFixture() (*usecase.ProductUseCase, *memProducts) {
	cats := &memCategories{rows: map[int64]*entity.Category{
		1: {ID: 1, Name: "Playeras", Active: true},
		2: {ID: 2, Name: "Descontinuada", Active: false},
	}}
	prods := &memProducts{rows: map[int64]*entity.Product{}}
	return usecase.NewProductUseCase(prods, cats), prods
}

func TestProduct_CreateYFiltroPorCategoria(t *testing.T) {
	uc, _ := newProductFixture()
	created, err := uc.Create(context.Background(), productRequest(1, "199.90", 5))
	require.NoError(t, err)
	assert.Equal(t, "Playeras", created.CategoryName)

	cat := int64(1)
	list, err := uc.List(context.Background(), &cat)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	other := int64(3)
	list, err = uc.List(context.Background(), &other)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProduct_ReglasDeNegocio(t *testing.T) {
	uc, _ := newProductFixture()
	cases := map[string]dto.ProductRequest{
		"precio cero":           productRequest(1, "0", 1),
		"precio sub-centavo":    productRequest(1, "0.001", 1),
		"stock negativo":        productRequest(1, "10", -1),
		"categoría inexistente": productRequest(9, "10", 1),
		"categoría inactiva":    productRequest(2, "10", 1),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestProduct_BorradoFisico(t *testing.T) {
	uc, prods := newProductFixture()
	created, err := uc.Create(context.Background(), productRequest(1, "10", 1))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Empty(t, prods.rows)
	assert.ErrorIs(t, uc.Delete(context.Background(), created.ID), domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_UpdateInexistente(t *testing.T) {
	uc, _ := newProductFixture()
	_, err := uc.Update(context.Background(), 42, productRequest(1, "10", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ────────────────────────────────────────────────────────────────────────────
// Categorías
// ────────────────────────────────────────────────────────────────────────────

func TestCategory_BorradoLogico(t *testing.T) {
	repo := &memCategories{rows: map[int64]*entity.Category{}}
	uc := usecase.NewCategoryUseCase(repo)

	c, err := uc.Create(context.Background(), dto.CategoryRequest{Name: "Sudaderas"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(context.Background(), c.ID))

	assert.Contains(t, repo.rows, c.ID, "la fila se conserva")
	assert.False(t, repo.rows[c.ID].Active)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.Update(context.Background(), c.ID, dto.CategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), c.ID), domain.ErrNotFound)
}

func TestCategory_NombreObligatorio(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&memCategories{rows: map[int64]*entity.Category{}})
	_, err := uc.Create(context.Background(), dto.CategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Create(context.Background(), dto.CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(context.Background(), 1, dto.CategoryRequest{Name: "\t "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ────────────────────────────────────────────────────────────────────────────
// Usuarios
// ────────────────────────────────────────────────────────────────────────────

func newUserFixture() (*usecase.UserUseCase, *memUsers) {
	repo := &memUsers{rows: map[int64]*entity.User{
		1: {ID: 1, Name: "Admin", Email: "admin@tienda.com", Role: entity.RoleAdmin, Active: true},
		2: {ID: 2, Name: "Alice", Email: "alice@example.com", Role: entity.RoleCustomer, Active: true},
	}}
	return usecase.NewUserUseCase(repo), repo
}

func TestUser_BajaLogicaYListado(t *testing.T) {
	uc, repo := newUserFixture()
	require.NoError(t, uc.Delete(context.Background(), 2))
	assert.False(t, repo.rows[2].Active)

	list, err := uc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "admin@tienda.com", list[0].Email)

	assert.ErrorIs(t, uc.Delete(context.Background(), 2), domain.ErrNotFound)
}

func TestUser_UpdateRole(t *testing.T) {
	uc, repo := newUserFixture()
	require.NoError(t, uc.UpdateRole(context.Background(), 2, dto.UpdateRoleRequest{RoleID: int(entity.RoleSeller)}))
	assert.Equal(t, entity.RoleSeller, repo.rows[2].Role)

	assert.ErrorIs(t, uc.UpdateRole(context.Background(), 2, dto.UpdateRoleRequest{RoleID: 7}), domain.ErrRoleNotFound)
	assert.ErrorIs(t, uc.UpdateRole(context.Background(), 99, dto.UpdateRoleRequest{RoleID: 1}), domain.ErrNotFound)
}
