package partner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// PartnerUseCase CRUD de socios de negocio (clientes y proveedores).
// Es deliberadamente ajeno al ledger: los productos solo guardan el nombre del
// proveedor como texto libre.
type PartnerUseCase struct {
	repo repository.PartnerRepository
}

// NewPartnerUseCase construye el caso de uso.
func NewPartnerUseCase(repo repository.PartnerRepository) *PartnerUseCase {
	return &PartnerUseCase{repo: repo}
}

// Create da de alta un socio.
func (uc *PartnerUseCase) Create(in dto.CreatePartnerRequest) (*dto.PartnerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if !entity.ValidPartnerType(in.Type) {
		return nil, fmt.Errorf("%w: type debe ser %q, %q o %q", domain.ErrInvalidInput,
			entity.PartnerTypeClient, entity.PartnerTypeSupplier, entity.PartnerTypeBoth)
	}
	now := time.Now()
	p := &entity.Partner{
		ID:          uuid.New().String(),
		Type:        in.Type,
		Name:        in.Name,
		TaxID:       in.TaxID,
		ContactName: in.ContactName,
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return dto.ToPartnerResponse(p), nil
}

// GetByID obtiene un socio. (nil, nil) si no existe.
func (uc *PartnerUseCase) GetByID(id string) (*dto.PartnerResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToPartnerResponse(p), nil
}

// Update edita campos de un socio. Lectura y escritura ocurren en una sola
// transacción del repositorio, así dos ediciones concurrentes no se pisan.
func (uc *PartnerUseCase) Update(id string, in dto.UpdatePartnerRequest) (*dto.PartnerResponse, error) {
	var out *dto.PartnerResponse
	err := uc.repo.Mutate(id, func(p *entity.Partner) error {
		if in.Type != nil {
			if !entity.ValidPartnerType(*in.Type) {
				return fmt.Errorf("%w: tipo desconocido %q", domain.ErrInvalidInput, *in.Type)
			}
			p.Type = *in.Type
		}
		if in.Name != nil {
			if *in.Name == "" {
				return fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
			}
			p.Name = *in.Name
		}
		if in.TaxID != nil {
			p.TaxID = *in.TaxID
		}
		if in.ContactName != nil {
			p.ContactName = *in.ContactName
		}
		if in.Phone != nil {
			p.Phone = *in.Phone
		}
		if in.Email != nil {
			p.Email = *in.Email
		}
		if in.Address != nil {
			p.Address = *in.Address
		}
		if in.Notes != nil {
			p.Notes = *in.Notes
		}
		p.UpdatedAt = time.Now()
		out = dto.ToPartnerResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina un socio.
func (uc *PartnerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// List devuelve todos los socios ordenados por nombre.
func (uc *PartnerUseCase) List() (*dto.PartnerListResponse, error) {
	partners, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		items = append(items, *dto.ToPartnerResponse(p))
	}
	return &dto.PartnerListResponse{Items: items}, nil
}
