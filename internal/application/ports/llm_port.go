package ports

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
)

// LLMService define el puerto de salida para los servicios de inteligencia
// artificial. Cualquier adaptador (Gemini, Anthropic, mock) debe implementar
// esta interfaz; aplicación y dominio solo conocen este contrato (DIP).
type LLMService interface {
	// ExtractPurchaseOrder analiza la imagen de una orden de compra (base64)
	// y devuelve los datos extraídos, enriquecidos con valores plausibles
	// cuando no figuran en el documento. El contexto debe llevar timeout para
	// no bloquear en llamadas externas.
	ExtractPurchaseOrder(ctx context.Context, imageBase64, mimeType string) (*dto.OrderExtractionDTO, error)
}
