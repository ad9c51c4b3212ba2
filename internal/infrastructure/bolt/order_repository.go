package bolt

import (
	"encoding/json"
	"fmt"
	"sort"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre bbolt.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una orden importada.
func (r *OrderRepo) Create(order *entity.Order) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		raw, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("serializar orden: %w", err)
		}
		return tx.Bucket(bucketOrders).Put([]byte(order.ID), raw)
	})
}

// GetByID obtiene una orden por ID. (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	var order *entity.Order
	err := r.q.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketOrders).Get([]byte(id))
		if raw == nil {
			return nil
		}
		var o entity.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return fmt.Errorf("deserializar orden: %w", err)
		}
		order = &o
		return nil
	})
	return order, err
}

// List devuelve las órdenes de la más reciente a la más antigua.
// limit <= 0 significa sin límite.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	var all []*entity.Order
	err := r.q.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketOrders).ForEach(func(_, raw []byte) error {
			var o entity.Order
			if err := json.Unmarshal(raw, &o); err != nil {
				return fmt.Errorf("deserializar orden: %w", err)
			}
			all = append(all, &o)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ImportedAt.After(all[j].ImportedAt)
	})
	return paginate(all, limit, offset), nil
}

// Count devuelve la cantidad de órdenes importadas.
func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.q.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketOrders).Stats().KeyN
		return nil
	})
	return n, err
}
