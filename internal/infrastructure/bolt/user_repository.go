package bolt

import (
	"encoding/json"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre bbolt.
// Clave del documento: el ID; la búsqueda por username recorre el bucket
// (decenas de usuarios, no hace falta un índice secundario).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario nuevo. Rechaza usernames repetidos.
func (r *UserRepo) Create(user *entity.User) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		var taken bool
		_ = b.ForEach(func(_, raw []byte) error {
			var u entity.User
			if err := json.Unmarshal(raw, &u); err == nil && u.Username == user.Username {
				taken = true
			}
			return nil
		})
		if taken {
			return domain.ErrUsernameTaken
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("serializar usuario: %w", err)
		}
		return b.Put([]byte(user.ID), raw)
	})
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	var user *entity.User
	err := r.q.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketUsers).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var u entity.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("deserializar usuario: %w", err)
		}
		user = &u
		return nil
	})
	return user, err
}

// GetByUsername obtiene un usuario por nombre. (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	var user *entity.User
	err := r.q.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(_, raw []byte) error {
			var u entity.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return fmt.Errorf("deserializar usuario: %w", err)
			}
			if u.Username == username {
				user = &u
			}
			return nil
		})
	})
	return user, err
}

// Update sobreescribe un usuario existente.
func (r *UserRepo) Update(user *entity.User) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		if b.Get([]byte(user.ID)) == nil {
			return domain.ErrUserNotFound
		}
		raw, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("serializar usuario: %w", err)
		}
		return b.Put([]byte(user.ID), raw)
	})
}

// Mutate lee, modifica y guarda el usuario en una sola transacción de
// escritura, sin ventana entre la lectura y la escritura. Devuelve
// ErrUserNotFound si el ID no existe.
func (r *UserRepo) Mutate(id string, fn func(user *entity.User) error) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketUsers)
		raw := b.Get([]byte(id))
		if raw == nil {
			return domain.ErrUserNotFound
		}
		var u entity.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return fmt.Errorf("deserializar usuario: %w", err)
		}
		if err := fn(&u); err != nil {
			return err
		}
		out, err := json.Marshal(&u)
		if err != nil {
			return fmt.Errorf("serializar usuario: %w", err)
		}
		return b.Put([]byte(id), out)
	})
}

// List devuelve todos los usuarios.
func (r *UserRepo) List() ([]*entity.User, error) {
	var out []*entity.User
	err := r.q.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketUsers).ForEach(func(_, raw []byte) error {
			var u entity.User
			if err := json.Unmarshal(raw, &u); err != nil {
				return fmt.Errorf("deserializar usuario: %w", err)
			}
			out = append(out, &u)
			return nil
		})
	})
	return out, err
}

// Count devuelve la cantidad de usuarios (usado por el seed inicial).
func (r *UserRepo) Count() (int, error) {
	var n int
	err := r.q.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketUsers).Stats().KeyN
		return nil
	})
	return n, err
}
