package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
	// Mutate lee, aplica fn y guarda al usuario dentro de una única
	// transacción de escritura; si fn devuelve error no se escribe nada.
	Mutate(id string, fn func(user *entity.User) error) error
	List() ([]*entity.User, error)
	Count() (int, error)
}
