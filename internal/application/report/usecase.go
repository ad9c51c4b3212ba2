package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ReportUseCase agregaciones de solo lectura sobre el ledger: valorización,
// lista de reposición, exportes planos y etiqueta imprimible. Nunca muta nada.
type ReportUseCase struct {
	products  repository.ProductRepository
	checkouts repository.CheckoutRepository
	labels    ports.LabelPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(products repository.ProductRepository, checkouts repository.CheckoutRepository, labels ports.LabelPDFGenerator) *ReportUseCase {
	return &ReportUseCase{products: products, checkouts: checkouts, labels: labels}
}

// ProductLabelPDF genera la etiqueta PDF con código QR de un producto.
func (uc *ReportUseCase) ProductLabelPDF(ctx context.Context, sku string) ([]byte, error) {
	p, err := uc.products.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.labels.GenerateProductLabel(ctx, p)
}

// Valuation calcula la valorización del inventario (cantidad × costo unitario
// por producto, en aritmética decimal).
func (uc *ReportUseCase) Valuation() (*dto.ValuationResponse, error) {
	products, err := uc.products.List(0, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.ValuationResponse{TotalValue: decimal.Zero}
	for _, p := range products {
		value := p.StockValue()
		out.Items = append(out.Items, dto.ValuationItem{
			SKU:        p.SKU,
			Name:       p.Name,
			Quantity:   p.Quantity,
			UnitCost:   p.Cost,
			StockValue: value,
		})
		out.TotalValue = out.TotalValue.Add(value)
		out.TotalUnits += p.Quantity
	}
	out.SKUCount = len(products)
	return out, nil
}

// LowStock devuelve los productos en o por debajo de su stock mínimo,
// ordenados por déficit (los más urgentes primero).
func (uc *ReportUseCase) LowStock() (*dto.LowStockResponse, error) {
	products, err := uc.products.List(0, 0)
	if err != nil {
		return nil, err
	}
	out := &dto.LowStockResponse{}
	for _, p := range products {
		if !p.BelowMinimum() {
			continue
		}
		out.Items = append(out.Items, dto.LowStockItem{
			SKU:      p.SKU,
			Name:     p.Name,
			Location: p.Location,
			Quantity: p.Quantity,
			MinStock: p.MinStock,
			Deficit:  p.MinStock - p.Quantity,
		})
	}
	sort.Slice(out.Items, func(i, j int) bool {
		return out.Items[i].Deficit > out.Items[j].Deficit
	})
	return out, nil
}

// movementCSVRow fila del exporte de historial de movimientos.
type movementCSVRow struct {
	Date        string `csv:"fecha"`
	SKU         string `csv:"sku"`
	Product     string `csv:"producto"`
	Type        string `csv:"tipo"`
	Quantity    int64  `csv:"cantidad"`
	User        string `csv:"responsable"`
	Description string `csv:"descripcion"`
}

// MovementHistoryCSV aplana el historial de todos los productos en un CSV,
// del movimiento más reciente al más antiguo.
func (uc *ReportUseCase) MovementHistoryCSV() ([]byte, error) {
	products, err := uc.products.List(0, 0)
	if err != nil {
		return nil, err
	}
	var rows []movementCSVRow
	for _, p := range products {
		for _, h := range p.History {
			rows = append(rows, movementCSVRow{
				Date:        h.Date.Format(time.RFC3339),
				SKU:         p.SKU,
				Product:     p.Name,
				Type:        h.Type,
				Quantity:    h.QuantityAffected,
				User:        h.ResponsibleUser,
				Description: h.Description,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })

	raw, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("generar CSV de movimientos: %w", err)
	}
	return raw, nil
}

// CheckoutHistoryXLSX exporta el historial de salidas a una planilla XLSX,
// una fila por registro con su estado derivado y lo ya revertido.
func (uc *ReportUseCase) CheckoutHistoryXLSX() ([]byte, error) {
	records, err := uc.checkouts.List(0, 0)
	if err != nil {
		return nil, err
	}

	const sheet = "Sheet1"
	xlsx := excelize.NewFile()
	headers := []string{"Secuencia", "Fecha", "SKU", "Producto", "Cantidad", "Ubicación", "Retirado por", "Registrado por", "Estado", "Revertido"}
	cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}
	for i, h := range headers {
		xlsx.SetCellValue(sheet, cols[i]+"1", h)
	}
	for i, rec := range records {
		row := i + 2
		xlsx.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.SequenceID)
		xlsx.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.Date.Format(time.RFC3339))
		xlsx.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.ProductSKU)
		xlsx.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.ProductName)
		xlsx.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.Quantity)
		xlsx.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.Location)
		xlsx.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.WithdrawnBy)
		xlsx.SetCellValue(sheet, fmt.Sprintf("H%d", row), rec.SystemUser)
		xlsx.SetCellValue(sheet, fmt.Sprintf("I%d", row), rec.Status())
		xlsx.SetCellValue(sheet, fmt.Sprintf("J%d", row), rec.ReversedQuantity)
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf); err != nil {
		return nil, fmt.Errorf("generar XLSX de salidas: %w", err)
	}
	return buf.Bytes(), nil
}
