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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre bbolt.
// Clave del documento: el SKU. Pasar el store o un txQuerier (Querier).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo. Rechaza SKUs duplicados dentro de la
// misma transacción que inserta, así la verificación no puede quedar obsoleta.
func (r *ProductRepo) Create(product *entity.Product) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		key := []byte(product.SKU)
		if b.Get(key) != nil {
			return domain.ErrDuplicateSKU
		}
		raw, err := json.Marshal(product)
		if err != nil {
			return fmt.Errorf("serializar producto: %w", err)
		}
		return b.Put(key, raw)
	})
}

// GetBySKU obtiene un producto por SKU. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	var product *entity.Product
	err := r.q.View(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(bucketProducts).Get([]byte(sku))
		if raw == nil {
			return nil
		}
		var p entity.Product
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("deserializar producto %s: %w", sku, err)
		}
		product = &p
		return nil
	})
	return product, err
}

// Update sobreescribe un producto existente; el producto debe existir.
func (r *ProductRepo) Update(product *entity.Product) error {
	return r.q.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketProducts)
		key := []byte(product.SKU)
		if b.Get(key) == nil {
			return domain.ErrProductNotFound
		}
		raw, err := json.Marshal(product)
		if err != nil {
			return fmt.Errorf("serializar producto: %w", err)
		}
		return b.Put(key, raw)
	})
}

// List devuelve los productos ordenados por nombre (el orden que muestra el
// catálogo). limit <= 0 significa sin límite.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var all []*entity.Product
	err := r.q.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketProducts).ForEach(func(_, raw []byte) error {
			var p entity.Product
			if err := json.Unmarshal(raw, &p); err != nil {
				return fmt.Errorf("deserializar producto: %w", err)
			}
			all = append(all, &p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return strings.ToLower(all[i].Name) < strings.ToLower(all[j].Name)
	})
	return paginate(all, limit, offset), nil
}

// Count devuelve la cantidad de productos.
func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.q.View(func(tx *bbolt.Tx) error {
		n = tx.Bucket(bucketProducts).Stats().KeyN
		return nil
	})
	return n, err
}

// paginate aplica limit/offset sobre una lista ya ordenada.
// El inventario es de cientos a pocos miles de SKUs; ordenar en memoria alcanza.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
