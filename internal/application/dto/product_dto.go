package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. Quantity es el stock
// inicial y queda asentado como primera entrada del historial.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Quantity      int64           `json:"quantity"`
	Location      string          `json:"location"`
	Cost          decimal.Decimal `json:"cost"`
	MinStock      int64           `json:"min_stock"`
	MaxStock      int64           `json:"max_stock"`
	Supplier      string          `json:"supplier"`
	Category      string          `json:"category"`
	UnitOfMeasure string          `json:"unit_of_measure"`
}

// UpdateProductRequest entrada para editar campos descriptivos de un producto.
// No permite tocar SKU ni Quantity: el stock solo cambia vía operaciones del
// ledger, que sí dejan historial.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Cost          *decimal.Decimal `json:"cost"`
	MinStock      *int64           `json:"min_stock"`
	MaxStock      *int64           `json:"max_stock"`
	Supplier      *string          `json:"supplier"`
	Category      *string          `json:"category"`
	UnitOfMeasure *string          `json:"unit_of_measure"`
}

// HistoryEntryResponse entrada del historial en respuestas.
type HistoryEntryResponse struct {
	Date             time.Time `json:"date"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	QuantityAffected int64     `json:"quantity_affected"`
	ResponsibleUser  string    `json:"responsible_user"`
}

// ProductResponse salida de un producto, con su historial completo.
type ProductResponse struct {
	SKU           string                 `json:"sku"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Quantity      int64                  `json:"quantity"`
	Location      string                 `json:"location"`
	Cost          decimal.Decimal        `json:"cost"`
	MinStock      int64                  `json:"min_stock"`
	MaxStock      int64                  `json:"max_stock"`
	Supplier      string                 `json:"supplier"`
	Category      string                 `json:"category"`
	UnitOfMeasure string                 `json:"unit_of_measure"`
	History       []HistoryEntryResponse `json:"history"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToProductResponse convierte la entidad a DTO de salida.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	history := make([]HistoryEntryResponse, 0, len(p.History))
	for _, h := range p.History {
		history = append(history, HistoryEntryResponse{
			Date:             h.Date,
			Type:             h.Type,
			Description:      h.Description,
			QuantityAffected: h.QuantityAffected,
			ResponsibleUser:  h.ResponsibleUser,
		})
	}
	return &ProductResponse{
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Quantity:      p.Quantity,
		Location:      p.Location,
		Cost:          p.Cost,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		Supplier:      p.Supplier,
		Category:      p.Category,
		UnitOfMeasure: p.UnitOfMeasure,
		History:       history,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
