package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/pricing"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El borrado es físico.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories}
}

// List productos con su categoría; categoryID opcional.
func (uc *ProductUseCase) List(ctx context.Context, categoryID *int64) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx, repository.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto no encontrado")
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create da de alta un producto en una categoría activa.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Update reemplaza todos los campos del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.fromRequest(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	ok, err := uc.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NotFound("producto no encontrado")
	}
	out := toProductResponse(p)
	return &out, nil
}

// Delete elimina el producto de forma definitiva.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NotFound("producto no encontrado")
	}
	return nil
}

func (uc *ProductUseCase) fromRequest(ctx context.Context, in dto.ProductRequest) (*entity.Product, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if !in.Price.Round(pricing.Places).IsPositive() {
		return nil, domain.Validation("el precio debe ser mayor a 0")
	}
	cat, err := uc.categories.GetByID(ctx, *in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.Validation("la categoría no existe")
	}
	return &entity.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price.Round(pricing.Places),
		Stock:        *in.Stock,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		ImageURL:     in.ImageURL,
	}, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		ImageURL:     p.ImageURL,
	}
}
