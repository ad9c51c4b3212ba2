// Package pdf genera la etiqueta imprimible de un producto con Maroto v2.
//
// Layout de la etiqueta (A6 apaisado):
//
//	┌───────────────────────────────┐
//	│  ┌────────┐  NOMBRE PRODUCTO  │
//	│  │   QR   │  SKU: ...         │
//	│  │  (SKU) │  Ubicación: ...   │
//	│  └────────┘  Stock: N un      │
//	└───────────────────────────────┘
//
// El QR codifica el SKU a secas para que un lector lo use directo como clave
// de búsqueda.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-api/internal/application/ports"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

var _ ports.LabelPDFGenerator = (*MarotoLabelGenerator)(nil)

var (
	colorInk  = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoLabelGenerator implementa ports.LabelPDFGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// GenerateProductLabel genera el PDF de la etiqueta y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateProductLabel(_ context.Context, product *entity.Product) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(5).WithRightMargin(5).
		WithTopMargin(5).WithBottomMargin(5).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Etiqueta "+product.SKU, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(40).Add(
		col.New(5).Add(
			code.NewQr(product.SKU, props.Rect{
				Percent: 95,
				Center:  true,
			}),
		),
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorInk, Top: 2,
			}),
			text.New("SKU: "+product.SKU, props.Text{
				Size: 9, Top: 12, Color: colorInk,
			}),
			text.New("Ubicación: "+nonEmpty(product.Location, "sin asignar"), props.Text{
				Size: 8, Top: 19, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Stock: %d %s", product.Quantity, product.Unit()), props.Text{
				Size: 8, Top: 25, Color: colorGray,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(5).Add(col.New(12).Add(
		text.New("Escanee el QR para consultar el producto en el sistema.", props.Text{
			Size: 6, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
