package dto

import "github.com/shopspring/decimal"

// ProductRequest alta o modificación de un producto; todos los campos son obligatorios.
type ProductRequest struct {
	Name        string           `json:"nombre" validate:"required,notblank,max=200"`
	Description string           `json:"descripcion" validate:"required"`
	Price       *decimal.Decimal `json:"precio" validate:"required"`
	Stock       *int             `json:"stock" validate:"required,gte=0"`
	CategoryID  *int64           `json:"categoria_id" validate:"required,gt=0"`
	ImageURL    string           `json:"imagen_url" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"nombre"`
	Description  string          `json:"descripcion"`
	Price        decimal.Decimal `json:"precio"`
	Stock        int             `json:"stock"`
	CategoryID   int64           `json:"categoria_id"`
	CategoryName string          `json:"categoria,omitempty"`
	ImageURL     string          `json:"imagen_url"`
}
