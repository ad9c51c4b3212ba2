package bolt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo implementación del puerto PartnerRepository sobre bbolt.
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador de persistencia para socios.
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un socio nuevo.
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		raw, err := json.Marshal(partner)
		if err != nil {
			return fmt.Errorf("serializar socio: %w", err)
		}
		return tx.Bucket(bucketPartners).Put([]byte(partner.ID), raw)
	})
}

// GetByID obtiene un socio por ID. (nil, nil) si no existe.
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	var partner *entity.Partner
	err := r.q.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketPartners).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var p entity.Partner
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("deserializar socio: %w", err)
		}
		partner = &p
		return nil
	})
	return partner, err
}

// Update sobreescribe un socio existente.
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPartners)
		if b.Get([]byte(partner.ID)) == nil {
			return domain.ErrNotFound
		}
		raw, err := json.Marshal(partner)
		if err != nil {
			return fmt.Errorf("serializar socio: %w", err)
		}
		return b.Put([]byte(partner.ID), raw)
	})
}

// Mutate lee, modifica y guarda el socio en una sola transacción de
// escritura, sin ventana entre la lectura y la escritura. Devuelve
// ErrNotFound si el ID no existe.
func (r *PartnerRepo) Mutate(id string, fn func(partner *entity.Partner) error) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPartners)
		raw := b.Get([]byte(id))
		if raw == nil {
			return domain.ErrNotFound
		}
		var p entity.Partner
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("deserializar socio: %w", err)
		}
		if err := fn(&p); err != nil {
			return err
		}
		out, err := json.Marshal(&p)
		if err != nil {
			return fmt.Errorf("serializar socio: %w", err)
		}
		return b.Put([]byte(id), out)
	})
}

// Delete elimina un socio por ID.
func (r *PartnerRepo) Delete(id string) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketPartners)
		if b.Get([]byte(id)) == nil {
			return domain.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
}

// List devuelve los socios ordenados por nombre.
func (r *PartnerRepo) List() ([]*entity.Partner, error) {
	var out []*entity.Partner
	err := r.q.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPartners).ForEach(func(_, raw []byte) error {
			var p entity.Partner
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("deserializar socio: %w", err)
			}
			out = append(out, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}
