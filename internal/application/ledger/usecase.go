// Package ledger implementa la máquina de estados del stock: las únicas vías
// sancionadas para mutar cantidades de producto y registros de salida.
//
// Invariantes que este paquete sostiene:
//   - conservación: Quantity de un producto es igual a la suma con signo de
//     los deltas de su historial;
//   - secuencia: los números de salida crecen de a uno y nunca se reutilizan;
//   - cota de reversión: ReversedQuantity nunca excede la cantidad original;
//   - historial solo-agregar: nada se reordena ni se borra.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// Tipos de entrada de stock aceptados por AddStock.
const (
	StockKindEntry      = entity.HistoryTypeEntry
	StockKindAdjustment = entity.HistoryTypeAdjustment
)

// LedgerUseCase mantiene las colecciones autoritativas de productos y salidas
// y expone las únicas rutas de mutación. Se construye una vez por proceso; no
// hay estado ambiental.
type LedgerUseCase struct {
	txRunner  TxRunner
	products  repository.ProductRepository
	checkouts repository.CheckoutRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, products repository.ProductRepository, checkouts repository.CheckoutRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, products: products, checkouts: checkouts}
}

// CreateProduct da de alta un producto con su stock inicial y siembra el
// historial con la entrada de creación. Rechaza SKU duplicado y cantidad
// inicial negativa.
func (uc *LedgerUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest, actingUser string) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: sku y name son requeridos", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: el stock inicial no puede ser negativo", domain.ErrInvalidQuantity)
	}
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.MinStock < 0 || in.MaxStock < 0 {
		return nil, fmt.Errorf("%w: los umbrales de stock no pueden ser negativos", domain.ErrInvalidInput)
	}

	now := time.Now()
	product := &entity.Product{
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Quantity:      in.Quantity,
		Location:      in.Location,
		Cost:          in.Cost,
		MinStock:      in.MinStock,
		MaxStock:      in.MaxStock,
		Supplier:      in.Supplier,
		Category:      in.Category,
		UnitOfMeasure: in.UnitOfMeasure,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	product.History = []entity.HistoryEntry{{
		Date: now,
		Type: entity.HistoryTypeCreation,
		Description: fmt.Sprintf("Stock inicial: %d %s(s) en '%s', creado por %s.",
			in.Quantity, product.Unit(), in.Location, actingUser),
		QuantityAffected: in.Quantity,
		ResponsibleUser:  actingUser,
	}}

	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// UpdateProduct sobreescribe campos descriptivos del producto. No toca SKU ni
// Quantity y, a propósito, no agrega historial: las ediciones de ficha no son
// hechos de stock auditables. La lectura y la escritura ocurren en la misma
// transacción, así la edición no pisa un movimiento de stock concurrente.
func (uc *LedgerUseCase) UpdateProduct(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.CheckoutRepository) error {
		product, err := products.GetBySKU(sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.Name != nil {
			if *in.Name == "" {
				return fmt.Errorf("%w: name no puede quedar vacío", domain.ErrInvalidInput)
			}
			product.Name = *in.Name
		}
		if in.Description != nil {
			product.Description = *in.Description
		}
		if in.Cost != nil {
			if in.Cost.IsNegative() {
				return fmt.Errorf("%w: el costo no puede ser negativo", domain.ErrInvalidInput)
			}
			product.Cost = *in.Cost
		}
		if in.MinStock != nil {
			product.MinStock = *in.MinStock
		}
		if in.MaxStock != nil {
			product.MaxStock = *in.MaxStock
		}
		if in.Supplier != nil {
			product.Supplier = *in.Supplier
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		if in.UnitOfMeasure != nil {
			product.UnitOfMeasure = *in.UnitOfMeasure
		}
		product.UpdatedAt = time.Now()

		if err := products.Update(product); err != nil {
			return err
		}
		out = dto.ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddStock suma unidades al producto como entrada o ajuste y asienta el delta
// en el historial. La lectura y la escritura ocurren en la misma transacción.
func (uc *LedgerUseCase) AddStock(ctx context.Context, sku string, in dto.AddStockRequest, actingUser string) (*dto.ProductResponse, error) {
	if in.Kind != StockKindEntry && in.Kind != StockKindAdjustment {
		return nil, fmt.Errorf("%w: kind debe ser %q o %q", domain.ErrInvalidInput, StockKindEntry, StockKindAdjustment)
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.CheckoutRepository) error {
		product, err := products.GetBySKU(sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		now := time.Now()
		product.Quantity += in.Quantity

		verb := "Entrada de"
		if in.Kind == StockKindAdjustment {
			verb = "Ajuste de"
		}
		product.History = append(product.History, entity.HistoryEntry{
			Date: now,
			Type: in.Kind,
			Description: fmt.Sprintf("%s %d %s(s) por %s. Nuevo total: %d.",
				verb, in.Quantity, product.Unit(), actingUser, product.Quantity),
			QuantityAffected: in.Quantity,
			ResponsibleUser:  actingUser,
		})
		product.UpdatedAt = now

		if err := products.Update(product); err != nil {
			return err
		}
		out = dto.ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveProduct reubica el producto y asienta el traslado en el historial con
// delta cero (la reubicación no afecta cantidades).
func (uc *LedgerUseCase) MoveProduct(ctx context.Context, sku string, in dto.MoveProductRequest, actingUser string) (*dto.ProductResponse, error) {
	if in.NewLocation == "" {
		return nil, fmt.Errorf("%w: new_location es requerido", domain.ErrInvalidInput)
	}

	var out *dto.ProductResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, _ repository.CheckoutRepository) error {
		product, err := products.GetBySKU(sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		now := time.Now()
		oldLocation := product.Location
		if oldLocation == "" {
			oldLocation = "N/A"
		}
		product.Location = in.NewLocation
		product.History = append(product.History, entity.HistoryEntry{
			Date: now,
			Type: entity.HistoryTypeMovement,
			Description: fmt.Sprintf("Movido de '%s' a '%s' por %s.",
				oldLocation, in.NewLocation, actingUser),
			QuantityAffected: 0,
			ResponsibleUser:  actingUser,
		})
		product.UpdatedAt = now

		if err := products.Update(product); err != nil {
			return err
		}
		out = dto.ToProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckoutStock registra una salida: reserva el siguiente número de secuencia,
// crea el registro auditable, descuenta el stock y asienta la salida en el
// historial del producto, todo en una sola transacción. La salida en
// descubierto se rechaza acá, no se delega al caller.
func (uc *LedgerUseCase) CheckoutStock(ctx context.Context, in dto.CheckoutRequest, systemUser string) (*dto.CheckoutResponse, error) {
	if in.WithdrawnBy == "" {
		return nil, fmt.Errorf("%w: withdrawn_by es requerido", domain.ErrInvalidInput)
	}

	var out *dto.CheckoutResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, checkouts repository.CheckoutRepository) error {
		product, err := products.GetBySKU(in.SKU)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if in.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if in.Quantity > product.Quantity {
			return fmt.Errorf("%w: disponible %d, solicitado %d",
				domain.ErrInsufficientStock, product.Quantity, in.Quantity)
		}

		sequenceID, err := checkouts.NextSequenceID()
		if err != nil {
			return err
		}
		now := time.Now()
		record := &entity.CheckoutRecord{
			SequenceID:       sequenceID,
			ID:               uuid.New().String(),
			Date:             now,
			ProductID:        product.SKU,
			ProductName:      product.Name,
			ProductSKU:       product.SKU,
			Quantity:         in.Quantity,
			Location:         product.Location,
			WithdrawnBy:      in.WithdrawnBy,
			SystemUser:       systemUser,
			ReversedQuantity: 0,
		}
		if err := checkouts.Create(record); err != nil {
			return err
		}

		product.Quantity -= in.Quantity
		product.History = append(product.History, entity.HistoryEntry{
			Date: now,
			Type: entity.HistoryTypeExit,
			Description: fmt.Sprintf("Salida de %d %s(s) retirada por \"%s\", registrada por %s. Nuevo total: %d.",
				in.Quantity, product.Unit(), in.WithdrawnBy, systemUser, product.Quantity),
			QuantityAffected: in.Quantity,
			ResponsibleUser:  systemUser,
		})
		product.UpdatedAt = now

		if err := products.Update(product); err != nil {
			return err
		}
		out = dto.ToCheckoutResponse(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReverseCheckout revierte total o parcialmente una salida. Las validaciones
// se evalúan en este orden (gana la primera que falla):
//
//  1. el registro existe;
//  2. queda cantidad reversible;
//  3. la cantidad pedida es un entero positivo;
//  4. la cantidad pedida no excede lo reversible (el error incluye el máximo);
//  5. el producto referenciado sigue existiendo.
//
// Si todo pasa, devuelve el stock al producto, asienta la reversión en el
// historial referenciando el número de secuencia y acumula el detalle en el
// registro; el estado se deriva solo (active/partially_reversed/reversed).
func (uc *LedgerUseCase) ReverseCheckout(ctx context.Context, sequenceID int64, in dto.ReversalRequest, reversingUser string) (*dto.ReversalResponse, error) {
	var out *dto.ReversalResponse
	err := uc.txRunner.Run(ctx, func(products repository.ProductRepository, checkouts repository.CheckoutRepository) error {
		record, err := checkouts.GetBySequenceID(sequenceID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrCheckoutNotFound
		}

		maxReversible := record.MaxReversible()
		if maxReversible <= 0 {
			return domain.ErrAlreadyReversed
		}
		if in.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
		if in.Quantity > maxReversible {
			return fmt.Errorf("%w: la cantidad máxima a revertir es %d",
				domain.ErrExceedsReversible, maxReversible)
		}

		product, err := products.GetBySKU(record.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: SKU %s", domain.ErrProductNotFound, record.ProductID)
		}

		now := time.Now()
		product.Quantity += in.Quantity
		product.History = append(product.History, entity.HistoryEntry{
			Date: now,
			Type: entity.HistoryTypeReversal,
			Description: fmt.Sprintf("Reversión de %d %s(s) de la salida %s por %s. Nuevo total: %d.",
				in.Quantity, product.Unit(), entity.FormatSequence(sequenceID), reversingUser, product.Quantity),
			QuantityAffected: in.Quantity,
			ResponsibleUser:  reversingUser,
		})
		product.UpdatedAt = now

		record.ReversedQuantity += in.Quantity
		record.ReversalHistory = append(record.ReversalHistory, entity.ReversalDetail{
			Date:     now,
			Quantity: in.Quantity,
			Username: reversingUser,
		})

		if err := products.Update(product); err != nil {
			return err
		}
		if err := checkouts.Update(record); err != nil {
			return err
		}
		out = &dto.ReversalResponse{
			Message:  "Reversión realizada con éxito.",
			Checkout: *dto.ToCheckoutResponse(record),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetProductBySKU obtiene un producto con su historial. (nil, nil) si no existe.
func (uc *LedgerUseCase) GetProductBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// ListProducts lista el catálogo ordenado por nombre.
func (uc *LedgerUseCase) ListProducts(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// GetCheckoutBySequenceID obtiene un registro de salida. (nil, nil) si no existe.
func (uc *LedgerUseCase) GetCheckoutBySequenceID(ctx context.Context, sequenceID int64) (*dto.CheckoutResponse, error) {
	record, err := uc.checkouts.GetBySequenceID(sequenceID)
	if err != nil {
		return nil, err
	}
	return dto.ToCheckoutResponse(record), nil
}

// ListCheckouts lista los registros de salida del más reciente al más antiguo.
func (uc *LedgerUseCase) ListCheckouts(ctx context.Context, page dto.PageRequest) (*dto.CheckoutListResponse, error) {
	page.DefaultPage()
	records, err := uc.checkouts.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.checkouts.Count()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CheckoutResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, *dto.ToCheckoutResponse(rec))
	}
	return &dto.CheckoutListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
