package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ImportOrderRequest entrada para importar una orden de compra desde la imagen
// del documento. Image es el contenido en base64.
type ImportOrderRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}

// OrderItemDTO línea de la orden, tanto en extracción como en respuestas.
type OrderItemDTO struct {
	SupplierCode string          `json:"supplier_code"`
	Description  string          `json:"description"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

// OrderExtractionDTO es lo que el modelo de IA extrae (y enriquece) de la
// imagen de la orden; los campos de sistema se completan al guardar.
type OrderExtractionDTO struct {
	OrderNumber   string          `json:"order_number"`
	IssueDate     string          `json:"issue_date"`
	SupplierName  string          `json:"supplier_name"`
	SupplierTaxID string          `json:"supplier_tax_id"`
	Items         []OrderItemDTO  `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CostCenter    string          `json:"cost_center"`
	PaymentTerms  string          `json:"payment_terms"`
	FirstDueDate  string          `json:"first_due_date"`
	DeliveryDate  string          `json:"delivery_date"`
	Status        string          `json:"status"`
	Requester     string          `json:"requester"`
}

// OrderResponse salida de una orden importada.
type OrderResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	IssueDate     string          `json:"issue_date"`
	SupplierName  string          `json:"supplier_name"`
	SupplierTaxID string          `json:"supplier_tax_id"`
	Items         []OrderItemDTO  `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CostCenter    string          `json:"cost_center"`
	PaymentTerms  string          `json:"payment_terms"`
	FirstDueDate  string          `json:"first_due_date,omitempty"`
	DeliveryDate  string          `json:"delivery_date"`
	Status        string          `json:"status"`
	Requester     string          `json:"requester"`
	ImportedAt    time.Time       `json:"imported_at"`
	ImportedBy    string          `json:"imported_by"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToOrderResponse convierte la entidad a DTO de salida.
func ToOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			SupplierCode: it.SupplierCode,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   it.TotalPrice,
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		IssueDate:     o.IssueDate,
		SupplierName:  o.SupplierName,
		SupplierTaxID: o.SupplierTaxID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		CostCenter:    o.CostCenter,
		PaymentTerms:  o.PaymentTerms,
		FirstDueDate:  o.FirstDueDate,
		DeliveryDate:  o.DeliveryDate,
		Status:        o.Status,
		Requester:     o.Requester,
		ImportedAt:    o.ImportedAt,
		ImportedBy:    o.ImportedBy,
	}
}
