package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para Partner.
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	Update(partner *entity.Partner) error
	// Mutate lee, aplica fn y guarda al socio dentro de una única
	// transacción de escritura; si fn devuelve error no se escribe nada.
	Mutate(id string, fn func(partner *entity.Partner) error) error
	Delete(id string) error
	// List devuelve los socios ordenados por nombre.
	List() ([]*entity.Partner, error)
}
