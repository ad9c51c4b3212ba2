package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatusPending es el estado inicial de una orden importada.
const OrderStatusPending = "Pendiente de entrega"

// OrderItem es una línea de una orden de compra.
type OrderItem struct {
	SupplierCode string          `json:"supplier_code"`
	Description  string          `json:"description"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// Order es una orden de compra ingresada al sistema, normalmente extraída de
// la imagen del documento por el servicio de IA y revisada por un usuario.
type Order struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	IssueDate     string          `json:"issue_date"` // AAAA-MM-DD tal como figura en el documento
	SupplierName  string          `json:"supplier_name"`
	SupplierTaxID string          `json:"supplier_tax_id"`
	Items         []OrderItem     `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`

	// Datos enriquecidos por el modelo cuando no figuran en el documento.
	CostCenter   string `json:"cost_center"`
	PaymentTerms string `json:"payment_terms"`
	FirstDueDate string `json:"first_due_date,omitempty"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
	Requester    string `json:"requester"`

	// Datos de sistema.
	ImportedAt time.Time `json:"imported_at"`
	ImportedBy string    `json:"imported_by"`
}
