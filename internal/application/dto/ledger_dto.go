package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// AddStockRequest entrada para registrar una entrada o un ajuste de stock.
// Kind es "entry" o "adjustment".
type AddStockRequest struct {
	Quantity int64  `json:"quantity"`
	Kind     string `json:"kind"`
}

// MoveProductRequest entrada para reubicar un producto.
type MoveProductRequest struct {
	NewLocation string `json:"new_location"`
}

// CheckoutRequest entrada para registrar una salida de stock.
// WithdrawnBy es quien retira físicamente el material (texto libre); el
// usuario de sistema que la registra sale del token.
type CheckoutRequest struct {
	SKU         string `json:"sku"`
	Quantity    int64  `json:"quantity"`
	WithdrawnBy string `json:"withdrawn_by"`
}

// ReversalRequest entrada para revertir (total o parcialmente) una salida.
type ReversalRequest struct {
	Quantity int64 `json:"quantity"`
}

// ReversalDetailResponse reversión aplicada sobre una salida.
type ReversalDetailResponse struct {
	Date     time.Time `json:"date"`
	Quantity int64     `json:"quantity"`
	Username string    `json:"username"`
}

// CheckoutResponse salida de un registro de salida; Status siempre se deriva
// de ReversedQuantity al momento de responder.
type CheckoutResponse struct {
	SequenceID       int64                    `json:"sequence_id"`
	Sequence         string                   `json:"sequence"` // presentación #000042
	ID               string                   `json:"id"`
	Date             time.Time                `json:"date"`
	ProductID        string                   `json:"product_id"`
	ProductName      string                   `json:"product_name"`
	ProductSKU       string                   `json:"product_sku"`
	Quantity         int64                    `json:"quantity"`
	Location         string                   `json:"location"`
	WithdrawnBy      string                   `json:"withdrawn_by"`
	SystemUser       string                   `json:"system_user"`
	Status           string                   `json:"status"`
	ReversedQuantity int64                    `json:"reversed_quantity"`
	MaxReversible    int64                    `json:"max_reversible"`
	ReversalHistory  []ReversalDetailResponse `json:"reversal_history"`
}

// CheckoutListResponse lista paginada de registros de salida.
type CheckoutListResponse struct {
	Items []CheckoutResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ReversalResponse resultado de una reversión exitosa.
type ReversalResponse struct {
	Message  string           `json:"message"`
	Checkout CheckoutResponse `json:"checkout"`
}

// ToCheckoutResponse convierte la entidad a DTO de salida.
func ToCheckoutResponse(c *entity.CheckoutRecord) *CheckoutResponse {
	if c == nil {
		return nil
	}
	reversals := make([]ReversalDetailResponse, 0, len(c.ReversalHistory))
	for _, rv := range c.ReversalHistory {
		reversals = append(reversals, ReversalDetailResponse{
			Date:     rv.Date,
			Quantity: rv.Quantity,
			Username: rv.Username,
		})
	}
	return &CheckoutResponse{
		SequenceID:       c.SequenceID,
		Sequence:         entity.FormatSequence(c.SequenceID),
		ID:               c.ID,
		Date:             c.Date,
		ProductID:        c.ProductID,
		ProductName:      c.ProductName,
		ProductSKU:       c.ProductSKU,
		Quantity:         c.Quantity,
		Location:         c.Location,
		WithdrawnBy:      c.WithdrawnBy,
		SystemUser:       c.SystemUser,
		Status:           c.Status(),
		ReversedQuantity: c.ReversedQuantity,
		MaxReversible:    c.MaxReversible(),
		ReversalHistory:  reversals,
	}
}
