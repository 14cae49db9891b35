package dto

// CategoryRequest alta o modificación de una categoría.
type CategoryRequest struct {
	Name string `json:"nombre" validate:"required,notblank,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	Active bool   `json:"activo"`
}
