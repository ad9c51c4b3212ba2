package dto

import (
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// CreatePartnerRequest entrada para crear un socio (cliente/proveedor).
type CreatePartnerRequest struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	TaxID       string `json:"tax_id"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdatePartnerRequest entrada para editar un socio.
type UpdatePartnerRequest struct {
	Type        *string `json:"type"`
	Name        *string `json:"name"`
	TaxID       *string `json:"tax_id"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// PartnerResponse salida de un socio.
type PartnerResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PartnerListResponse lista de socios.
type PartnerListResponse struct {
	Items []PartnerResponse `json:"items"`
}

// ToPartnerResponse convierte la entidad a DTO de salida.
func ToPartnerResponse(p *entity.Partner) *PartnerResponse {
	if p == nil {
		return nil
	}
	return &PartnerResponse{
		ID:          p.ID,
		Type:        p.Type,
		Name:        p.Name,
		TaxID:       p.TaxID,
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
