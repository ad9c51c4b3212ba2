package ports

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LabelPDFGenerator define el puerto de salida para generar la etiqueta
// imprimible de un producto (código QR con el SKU más sus datos de ubicación).
type LabelPDFGenerator interface {
	GenerateProductLabel(ctx context.Context, product *entity.Product) ([]byte, error)
}
