package entity

import "time"

// Tipos de socio de negocio.
const (
	PartnerTypeClient   = "cliente"
	PartnerTypeSupplier = "proveedor"
	PartnerTypeBoth     = "ambos"
)

// ValidPartnerType indica si el tipo es uno de los conocidos.
func ValidPartnerType(t string) bool {
	return t == PartnerTypeClient || t == PartnerTypeSupplier || t == PartnerTypeBoth
}

// Partner es un cliente o proveedor. Los productos lo referencian de forma
// débil por nombre (campo Supplier); el ledger nunca lo consulta.
type Partner struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"` // NIT / CNPJ / CPF
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
