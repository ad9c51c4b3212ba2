package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// llmTimeout acota la llamada al modelo; el adaptador tiene además su propio
// timeout de red.
const llmTimeout = 30 * time.Second

// OrderUseCase importa órdenes de compra: manda la imagen del documento al
// servicio de IA, normaliza lo extraído y lo persiste con el rastro de quién
// lo importó.
type OrderUseCase struct {
	repo repository.OrderRepository
	llm  ports.LLMService
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, llm ports.LLMService) *OrderUseCase {
	return &OrderUseCase{repo: repo, llm: llm}
}

// ImportFromImage extrae la orden de la imagen vía LLM y la guarda.
func (uc *OrderUseCase) ImportFromImage(ctx context.Context, in dto.ImportOrderRequest, username string) (*dto.OrderResponse, error) {
	if in.Image == "" {
		return nil, fmt.Errorf("%w: image es requerido", domain.ErrInvalidInput)
	}
	mimeType := in.MimeType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	llmCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	extracted, err := uc.llm.ExtractPurchaseOrder(llmCtx, in.Image, mimeType)
	if err != nil {
		return nil, err
	}
	return uc.save(extracted, username)
}

// save normaliza la extracción y la persiste. Expuesto por separado para que
// un flujo de revisión futuro pueda guardar una extracción ya corregida.
func (uc *OrderUseCase) save(extracted *dto.OrderExtractionDTO, username string) (*dto.OrderResponse, error) {
	if extracted.OrderNumber == "" {
		return nil, fmt.Errorf("%w: la extracción no trae número de orden", domain.ErrInvalidInput)
	}
	if len(extracted.Items) == 0 {
		return nil, fmt.Errorf("%w: la extracción no trae ítems", domain.ErrInvalidInput)
	}

	items := make([]entity.OrderItem, 0, len(extracted.Items))
	computedTotal := decimal.Zero
	for _, it := range extracted.Items {
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: ítem %q con cantidad %d", domain.ErrInvalidQuantity, it.Description, it.Quantity)
		}
		lineTotal := it.TotalPrice
		if lineTotal.IsZero() {
			// El modelo a veces omite el total de línea; se reconstruye.
			lineTotal = it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
		}
		items = append(items, entity.OrderItem{
			SupplierCode: it.SupplierCode,
			Description:  it.Description,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			TotalPrice:   lineTotal,
		})
		computedTotal = computedTotal.Add(lineTotal)
	}
	total := extracted.TotalAmount
	if total.IsZero() {
		total = computedTotal
	}
	status := extracted.Status
	if status == "" {
		status = entity.OrderStatusPending
	}

	o := &entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   extracted.OrderNumber,
		IssueDate:     extracted.IssueDate,
		SupplierName:  extracted.SupplierName,
		SupplierTaxID: extracted.SupplierTaxID,
		Items:         items,
		TotalAmount:   total,
		CostCenter:    extracted.CostCenter,
		PaymentTerms:  extracted.PaymentTerms,
		FirstDueDate:  extracted.FirstDueDate,
		DeliveryDate:  extracted.DeliveryDate,
		Status:        status,
		Requester:     extracted.Requester,
		ImportedAt:    time.Now(),
		ImportedBy:    username,
	}
	if err := uc.repo.Create(o); err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(o), nil
}

// GetByID obtiene una orden. (nil, nil) si no existe.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	o, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return dto.ToOrderResponse(o), nil
}

// List devuelve las órdenes de la más reciente a la más antigua.
func (uc *OrderUseCase) List(page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	orders, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, *dto.ToOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}
