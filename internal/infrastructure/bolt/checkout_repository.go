package bolt

import (
	"encoding/json"
	"fmt"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.CheckoutRepository = (*CheckoutRepo)(nil)

// CheckoutRepo implementación del puerto CheckoutRepository sobre bbolt.
// Clave del documento: el SequenceID en big endian, así el cursor recorre los
// registros en orden de secuencia sin ordenar en memoria.
type CheckoutRepo struct {
	q Querier
}

// NewCheckoutRepository construye el adaptador de persistencia para salidas.
func NewCheckoutRepository(q Querier) *CheckoutRepo {
	return &CheckoutRepo{q: q}
}

// NextSequenceID incrementa y devuelve el contador correlativo del bucket meta.
// Los registros nunca se borran, por lo que el contador equivale a
// "1 + máximo existente" y además garantiza que la secuencia nunca retrocede.
// Llamar dentro de la misma transacción que Create (vía TxRunner).
func (r *CheckoutRepo) NextSequenceID() (int64, error) {
	var next uint64
	err := r.q.Update(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		next = btoi(meta.Get(keyCheckoutSeq)) + 1
		return meta.Put(keyCheckoutSeq, itob(next))
	})
	if err != nil {
		return 0, fmt.Errorf("reservar número de secuencia: %w", err)
	}
	return int64(next), nil
}

// Create persiste un registro de salida nuevo.
func (r *CheckoutRepo) Create(record *entity.CheckoutRecord) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCheckouts)
		key := itob(uint64(record.SequenceID))
		if b.Get(key) != nil {
			// El contador de meta hace esto imposible salvo corrupción manual del archivo.
			return fmt.Errorf("número de secuencia %d ya usado", record.SequenceID)
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("serializar registro de salida: %w", err)
		}
		return b.Put(key, raw)
	})
}

// GetBySequenceID obtiene un registro por número de secuencia. (nil, nil) si no existe.
func (r *CheckoutRepo) GetBySequenceID(sequenceID int64) (*entity.CheckoutRecord, error) {
	if sequenceID <= 0 {
		return nil, nil
	}
	var record *entity.CheckoutRecord
	err := r.q.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketCheckouts).Get(itob(uint64(sequenceID)))
		if raw == nil {
			return nil
		}
		var rec entity.CheckoutRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("deserializar registro %d: %w", sequenceID, err)
		}
		record = &rec
		return nil
	})
	return record, err
}

// Update sobreescribe un registro existente (solo acumula reversiones).
func (r *CheckoutRepo) Update(record *entity.CheckoutRecord) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketCheckouts)
		key := itob(uint64(record.SequenceID))
		if b.Get(key) == nil {
			return domain.ErrCheckoutNotFound
		}
		raw, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("serializar registro de salida: %w", err)
		}
		return b.Put(key, raw)
	})
}

// List devuelve los registros del más reciente al más antiguo (secuencia
// descendente). limit <= 0 significa sin límite.
func (r *CheckoutRepo) List(limit, offset int) ([]*entity.CheckoutRecord, error) {
	var out []*entity.CheckoutRecord
	err := r.q.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketCheckouts).Cursor()
		skipped := 0
		for k, raw := c.Last(); k != nil; k, raw = c.Prev() {
			if skipped < offset {
				skipped++
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			var rec entity.CheckoutRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return fmt.Errorf("deserializar registro de salida: %w", err)
			}
			out = append(out, &rec)
		}
		return nil
	})
	return out, err
}

// Count devuelve la cantidad de registros de salida.
func (r *CheckoutRepo) Count() (int, error) {
	var n int
	err := r.q.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketCheckouts).Stats().KeyN
		return nil
	})
	return n, err
}
