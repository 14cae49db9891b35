package entity

// Category categoría de productos. Se elimina lógicamente (Active=false).
type Category struct {
	ID     int64
	Name   string
	Active bool
}
