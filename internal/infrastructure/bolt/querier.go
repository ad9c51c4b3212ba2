package bolt

import bbolt "go.etcd.io/bbolt"

// Querier abstrae si un repositorio abre su propia transacción (*bbolt.DB) o
// participa de una transacción en curso (txQuerier). Cumple el mismo papel que
// el par pool/tx de los repositorios SQL: el repositorio no sabe ni le importa
// quién maneja el ciclo de vida de la transacción.
type Querier interface {
	View(fn func(tx *bbolt.Tx) error) error
	Update(fn func(tx *bbolt.Tx) error) error
}

// txQuerier ata un repositorio a una transacción ya abierta por TxRunner.
type txQuerier struct {
	tx *bbolt.Tx
}

func (q txQuerier) View(fn func(tx *bbolt.Tx) error) error {
	return fn(q.tx)
}

func (q txQuerier) Update(fn func(tx *bbolt.Tx) error) error {
	if !q.tx.Writable() {
		return bbolt.ErrTxNotWritable
	}
	return fn(q.tx)
}
