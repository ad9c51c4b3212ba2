package repository

import "github.com/jhoicas/bodega-api/internal/domain/entity"

// CheckoutRepository define el puerto de persistencia para CheckoutRecord.
// Los registros nunca se borran; Update solo se usa para acumular reversiones.
type CheckoutRepository interface {
	// NextSequenceID reserva y devuelve el siguiente número correlativo.
	// Debe invocarse dentro de la misma transacción que Create para que la
	// secuencia nunca se repita ni retroceda.
	NextSequenceID() (int64, error)
	Create(record *entity.CheckoutRecord) error
	GetBySequenceID(sequenceID int64) (*entity.CheckoutRecord, error)
	Update(record *entity.CheckoutRecord) error
	// List devuelve los registros del más reciente al más antiguo.
	List(limit, offset int) ([]*entity.CheckoutRecord, error)
	Count() (int, error)
}
