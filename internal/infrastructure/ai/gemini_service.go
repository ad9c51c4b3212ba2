package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ports"
)

// Verificar en tiempo de compilación que GeminiService implementa LLMService.
var _ ports.LLMService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// orderParserPrompt define el rol del modelo y el formato de salida.
	// Con response_mime_type=application/json Gemini devuelve JSON puro, pero
	// extractJSON queda como red de seguridad por si envuelve en markdown.
	orderParserPrompt = `Eres un asistente experto en análisis de documentos de compras. Analiza la imagen de la orden de compra adjunta y devuelve ÚNICAMENTE un objeto JSON (sin texto adicional) con esta estructura exacta:
{
  "order_number": "<número de la orden>",
  "issue_date": "<fecha de emisión, formato AAAA-MM-DD>",
  "supplier_name": "<razón social del proveedor>",
  "supplier_tax_id": "<RUT/NIT del proveedor>",
  "items": [
    {
      "supplier_code": "<código del artículo según el proveedor>",
      "description": "<descripción del artículo>",
      "quantity": <cantidad, número entero>,
      "unit_price": "<precio unitario, número como string>",
      "total_price": "<total de la línea, número como string>"
    }
  ],
  "total_amount": "<monto total de la orden, número como string>",
  "cost_center": "<centro de costo si figura>",
  "payment_terms": "<condición de pago>",
  "first_due_date": "<primer vencimiento, formato AAAA-MM-DD>",
  "delivery_date": "<fecha de entrega, formato AAAA-MM-DD>",
  "status": "<estado del documento>",
  "requester": "<solicitante si figura>"
}

Reglas:
- Transcribe los números sin separadores de miles y con punto decimal.
- Si un campo no figura en el documento, infiere un valor plausible a partir del contexto; si es imposible, usa "" (string vacío).
- Si el total de una línea no figura, calcúlalo como cantidad × precio unitario.
- No inventes ítems: extrae solo las líneas visibles en el documento.`
)

// GeminiService adaptador que implementa LLMService llamando a la API REST de
// Google Gemini con entrada multimodal (prompt + imagen del documento).
// Usa únicamente la librería estándar (net/http) para no añadir dependencias.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 25 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // contenido en base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractPurchaseOrder manda la imagen de la orden a Gemini y deserializa la
// extracción estructurada.
func (s *GeminiService) ExtractPurchaseOrder(ctx context.Context, imageBase64, mimeType string) (*dto.OrderExtractionDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}

	payload := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: orderParserPrompt},
					{InlineData: &geminiInlineData{MIMEType: mimeType, Data: imageBase64}},
				},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1, // baja temperatura: transcripción, no creatividad
			MaxOutputTokens:  4096,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	rawJSON := extractJSON(gemResp.Candidates[0].Content.Parts[0].Text)

	var extraction dto.OrderExtractionDTO
	if err := json.Unmarshal([]byte(rawJSON), &extraction); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w (respuesta: %s)", err, rawJSON)
	}
	return &extraction, nil
}

// extractJSON quita los fences de markdown (```json ... ```) si el modelo los
// agrega a pesar del responseMimeType, y recorta espacios.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
