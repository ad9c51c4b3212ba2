// Package bolt implementa la persistencia embebida del sistema sobre bbolt:
// un bucket por almacén lógico (products, checkouts, users, partners, orders)
// con cada entidad serializada como documento JSON, más un bucket meta con la
// versión de esquema y el contador de secuencia de salidas.
//
// bbolt serializa los escritores, de modo que cada operación mutadora del
// ledger se ejecuta como una única transacción serializable (ver TxRunner).
package bolt

import (
	"encoding/binary"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
)

var (
	bucketProducts  = []byte("products")
	bucketCheckouts = []byte("checkouts")
	bucketUsers     = []byte("users")
	bucketPartners  = []byte("partners")
	bucketOrders    = []byte("orders")
	bucketMeta      = []byte("meta")

	keySchemaVersion = []byte("schema_version")
	keyCheckoutSeq   = []byte("checkout_sequence")
)

// schemaVersion se escribe al crear el archivo y se verifica al abrirlo,
// para poder migrar campos en versiones futuras.
const schemaVersion uint64 = 1

// Store es el archivo de datos embebido de la aplicación.
type Store struct {
	db *bbolt.DB
}

// Open abre (o crea) el archivo de datos, garantiza los buckets y verifica la
// versión de esquema. Falla si el archivo fue escrito por una versión más nueva.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("abrir archivo de datos: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketProducts, bucketCheckouts, bucketUsers, bucketPartners, bucketOrders, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("crear bucket %s: %w", name, err)
			}
		}
		meta := tx.Bucket(bucketMeta)
		raw := meta.Get(keySchemaVersion)
		if raw == nil {
			return meta.Put(keySchemaVersion, itob(schemaVersion))
		}
		if got := btoi(raw); got != schemaVersion {
			return fmt.Errorf("versión de esquema no soportada: %d (esperada %d)", got, schemaVersion)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close cierra el archivo de datos.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB expone la base subyacente; *bbolt.DB satisface Querier.
func (s *Store) DB() *bbolt.DB {
	return s.db
}

// Path devuelve la ruta del archivo de datos.
func (s *Store) Path() string {
	return s.db.Path()
}

// itob codifica un uint64 en big endian; mantiene orden natural de claves.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
