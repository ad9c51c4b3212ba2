package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create rechaza SKUs duplicados con domain.ErrDuplicateSKU; Update exige que
// el producto exista (domain.ErrProductNotFound) en lugar de no hacer nada.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	// List devuelve los productos ordenados por nombre.
	List(limit, offset int) ([]*entity.Product, error)
	Count() (int, error)
}
