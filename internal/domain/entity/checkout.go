package entity

import (
	"fmt"
	"time"
)

// Estados derivados de un registro de salida.
const (
	CheckoutStatusActive            = "active"
	CheckoutStatusPartiallyReversed = "partially_reversed"
	CheckoutStatusReversed          = "reversed" // terminal: no admite más reversiones
)

// ReversalDetail es una reversión aplicada sobre un registro de salida.
type ReversalDetail struct {
	Date     time.Time `json:"date"`
	Quantity int64     `json:"quantity"`
	Username string    `json:"username"`
}

// CheckoutRecord es el comprobante auditable de una salida de stock.
// SequenceID es el número correlativo que ven los usuarios: estrictamente
// creciente y nunca reutilizado. Los campos primarios (producto, cantidad,
// ubicación, responsables) quedan fijos al crearse; después solo crecen
// ReversedQuantity y ReversalHistory.
//
// Invariante: ReversedQuantity es la suma de Quantity sobre ReversalHistory
// y nunca excede Quantity.
type CheckoutRecord struct {
	SequenceID       int64            `json:"sequence_id"`
	ID               string           `json:"id"`
	Date             time.Time        `json:"date"`
	ProductID        string           `json:"product_id"` // SKU; referencia débil, el producto puede consultarse aparte
	ProductName      string           `json:"product_name"`
	ProductSKU       string           `json:"product_sku"`
	Quantity         int64            `json:"quantity"`
	Location         string           `json:"location"` // ubicación del producto al momento de la salida
	WithdrawnBy      string           `json:"withdrawn_by"`
	SystemUser       string           `json:"system_user"`
	ReversedQuantity int64            `json:"reversed_quantity"`
	ReversalHistory  []ReversalDetail `json:"reversal_history"`
}

// Status deriva el estado a partir de ReversedQuantity; nunca se almacena de
// forma independiente, así no puede divergir de los datos de origen.
func (c *CheckoutRecord) Status() string {
	switch {
	case c.ReversedQuantity >= c.Quantity:
		return CheckoutStatusReversed
	case c.ReversedQuantity > 0:
		return CheckoutStatusPartiallyReversed
	default:
		return CheckoutStatusActive
	}
}

// MaxReversible devuelve la cantidad que aún puede revertirse.
func (c *CheckoutRecord) MaxReversible() int64 {
	return c.Quantity - c.ReversedQuantity
}

// FormatSequence presenta el número de secuencia como lo ven los usuarios,
// con relleno de ceros a seis dígitos (ej. #000042).
func FormatSequence(sequenceID int64) string {
	return fmt.Sprintf("#%06d", sequenceID)
}
