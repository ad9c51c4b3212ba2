package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada en el historial de un producto (value object conceptual).
const (
	HistoryTypeCreation   = "creation"   // alta del producto con stock inicial
	HistoryTypeEntry      = "entry"      // entrada de mercancía
	HistoryTypeAdjustment = "adjustment" // ajuste de inventario
	HistoryTypeMovement   = "movement"   // reubicación física (no afecta cantidad)
	HistoryTypeExit       = "exit"       // salida registrada con número de secuencia
	HistoryTypeReversal   = "reversal"   // reversión total o parcial de una salida
)

// HistoryEntry es una entrada del historial de auditoría de un producto.
// La descripción se genera al momento de escribir y es inmutable después.
type HistoryEntry struct {
	Date             time.Time `json:"date"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	QuantityAffected int64     `json:"quantity_affected"` // magnitud con signo lógico según Type; 0 en movement
	ResponsibleUser  string    `json:"responsible_user"`
}

// Product representa un producto del almacén. El SKU es la clave única e
// inmutable; Quantity es la única fuente de verdad del stock disponible y
// History es el rastro de auditoría (solo se agrega, nunca se reordena ni borra).
//
// Invariante: Quantity es igual a la suma con signo de los deltas registrados
// en History (entradas/ajustes/reversiones suman, salidas restan).
type Product struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	Location      string          `json:"location"`
	Cost          decimal.Decimal `json:"cost"`      // costo unitario, solo para valorización
	MinStock      int64           `json:"min_stock"` // umbral de reposición (0 = sin umbral)
	MaxStock      int64           `json:"max_stock"`
	Supplier      string          `json:"supplier"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	History       []HistoryEntry  `json:"history"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Unit devuelve la unidad de medida o "un" si no fue definida.
func (p *Product) Unit() string {
	if p.UnitOfMeasure == "" {
		return "un"
	}
	return p.UnitOfMeasure
}

// BelowMinimum indica si el producto está en o por debajo de su stock mínimo.
// Un MinStock de cero significa que no hay umbral configurado.
func (p *Product) BelowMinimum() bool {
	return p.MinStock > 0 && p.Quantity <= p.MinStock
}

// StockValue devuelve la valorización del stock disponible (cantidad × costo).
func (p *Product) StockValue() decimal.Decimal {
	return p.Cost.Mul(decimal.NewFromInt(p.Quantity))
}
