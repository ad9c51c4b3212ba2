package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order.
// Las órdenes no se editan ni se borran una vez importadas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// List devuelve las órdenes de la más reciente a la más antigua.
	List(limit, offset int) ([]*entity.Order, error)
	Count() (int, error)
}
