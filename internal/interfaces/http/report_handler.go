package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/report"
)

// ReportHandler maneja reportes y exportes (protegido).
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Valuation devuelve la valorización del inventario.
func (h *ReportHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LowStock devuelve los productos en o por debajo de su stock mínimo.
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// MovementsCSV descarga el historial de movimientos como CSV.
func (h *ReportHandler) MovementsCSV(c *fiber.Ctx) error {
	raw, err := h.uc.MovementHistoryCSV()
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="movimientos.csv"`)
	return c.Send(raw)
}

// CheckoutsXLSX descarga el historial de salidas como planilla XLSX.
func (h *ReportHandler) CheckoutsXLSX(c *fiber.Ctx) error {
	raw, err := h.uc.CheckoutHistoryXLSX()
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="salidas.xlsx"`)
	return c.Send(raw)
}

// ProductLabel descarga la etiqueta PDF con código QR de un producto.
func (h *ReportHandler) ProductLabel(c *fiber.Ctx) error {
	sku := c.Params("sku")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SKU", Message: "sku es requerido"})
	}
	raw, err := h.uc.ProductLabelPDF(c.UserContext(), sku)
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="etiqueta-`+sku+`.pdf"`)
	return c.Send(raw)
}
