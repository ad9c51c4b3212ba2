package bolt

import (
	"context"

	bbolt "go.etcd.io/bbolt"

	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una única transacción de escritura de
// bbolt, con repositorios atados a esa transacción. Es lo que vuelve atómicas
// las operaciones que tocan producto + registro de salida + contador de
// secuencia a la vez (checkoutStock, reverseCheckout).
type TxRunner struct {
	db *bbolt.DB
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{db: store.DB()}
}

// Run abre una transacción de escritura, ejecuta fn con repos atados a ella y
// hace commit; si fn devuelve error, bbolt revierte todo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	checkoutRepo repository.CheckoutRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bbolt.Tx) error {
		q := txQuerier{tx: tx}
		return fn(NewProductRepository(q), NewCheckoutRepository(q))
	})
}
