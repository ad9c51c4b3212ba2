package ledger_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/ledger"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
	"github.com/jhoicas/bodega-api/internal/infrastructure/bolt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestLedger arma el caso de uso sobre un store bbolt real en un directorio
// temporal; ejercita el mismo camino de persistencia que producción.
func newTestLedger(t *testing.T) *ledger.LedgerUseCase {
	t.Helper()
	store, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	products := bolt.NewProductRepository(store.DB())
	checkouts := bolt.NewCheckoutRepository(store.DB())
	return ledger.NewLedgerUseCase(bolt.NewTxRunner(store), products, checkouts)
}

func createProduct(t *testing.T, uc *ledger.LedgerUseCase, sku string, qty int64) *dto.ProductResponse {
	t.Helper()
	out, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU:      sku,
		Name:     "Guante de nitrilo " + sku,
		Quantity: qty,
		Location: "Estante A1",
		Cost:     decimal.NewFromInt(150),
	}, "operador")
	require.NoError(t, err)
	return out
}

// historyBalance recalcula la cantidad a partir del historial: entradas,
// ajustes y reversiones suman; salidas restan; creación siembra; traslados no
// afectan.
func historyBalance(t *testing.T, history []dto.HistoryEntryResponse) int64 {
	t.Helper()
	var total int64
	for _, h := range history {
		switch h.Type {
		case entity.HistoryTypeCreation, entity.HistoryTypeEntry, entity.HistoryTypeAdjustment, entity.HistoryTypeReversal:
			total += h.QuantityAffected
		case entity.HistoryTypeExit:
			total -= h.QuantityAffected
		case entity.HistoryTypeMovement:
			// delta cero
		default:
			t.Fatalf("tipo de historial desconocido: %s", h.Type)
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta y edición de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SiembraHistorialDeCreacion(t *testing.T) {
	uc := newTestLedger(t)
	out := createProduct(t, uc, "SKU-001", 10)

	assert.Equal(t, int64(10), out.Quantity)
	require.Len(t, out.History, 1)
	assert.Equal(t, entity.HistoryTypeCreation, out.History[0].Type)
	assert.Equal(t, int64(10), out.History[0].QuantityAffected)
	assert.Equal(t, "operador", out.History[0].ResponsibleUser)
	assert.Contains(t, out.History[0].Description, "Stock inicial: 10")
}

func TestCreateProduct_RechazaSKUDuplicado(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Otro producto", Quantity: 5,
	}, "operador")
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreateProduct_RechazaStockInicialNegativo(t *testing.T) {
	uc := newTestLedger(t)
	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Producto", Quantity: -1,
	}, "operador")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestUpdateProduct_NoTocaCantidadNiAgregaHistorial(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	name := "Nombre corregido"
	cost := decimal.NewFromInt(200)
	out, err := uc.UpdateProduct(context.Background(), "SKU-001", dto.UpdateProductRequest{
		Name: &name,
		Cost: &cost,
	})
	require.NoError(t, err)

	assert.Equal(t, "Nombre corregido", out.Name)
	assert.True(t, cost.Equal(out.Cost))
	assert.Equal(t, int64(10), out.Quantity, "la edición de ficha no cambia stock")
	assert.Len(t, out.History, 1, "la edición de ficha no asienta historial")
}

// hookedRunner corre un hook antes de delegar en el runner real; simula una
// escritura que se commitea entre la llegada de la petición y el inicio de la
// transacción de la operación bajo prueba.
type hookedRunner struct {
	inner  ledger.TxRunner
	before func()
}

func (r *hookedRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	checkoutRepo repository.CheckoutRepository,
) error) error {
	if r.before != nil {
		r.before()
	}
	return r.inner.Run(ctx, fn)
}

func TestUpdateProduct_NoPisaMovimientosConcurrentes(t *testing.T) {
	store, err := bolt.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	products := bolt.NewProductRepository(store.DB())
	checkouts := bolt.NewCheckoutRepository(store.DB())
	runner := bolt.NewTxRunner(store)

	direct := ledger.NewLedgerUseCase(runner, products, checkouts)
	createProduct(t, direct, "SKU-001", 10)

	// Una entrada de stock se cuela justo antes de que la edición de ficha
	// abra su transacción de escritura.
	hooked := &hookedRunner{inner: runner, before: func() {
		_, err := direct.AddStock(context.Background(), "SKU-001", dto.AddStockRequest{
			Kind:     ledger.StockKindEntry,
			Quantity: 5,
		}, "operador")
		require.NoError(t, err)
	}}
	uc := ledger.NewLedgerUseCase(hooked, products, checkouts)

	name := "Nombre corregido"
	out, err := uc.UpdateProduct(context.Background(), "SKU-001", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Nombre corregido", out.Name)
	assert.Equal(t, int64(15), out.Quantity, "la entrada concurrente no se pierde")
	require.Len(t, out.History, 2, "el asiento de la entrada sobrevive a la edición")
	assert.Equal(t, out.Quantity, historyBalance(t, out.History))
}

func TestUpdateProduct_ProductoInexistente(t *testing.T) {
	uc := newTestLedger(t)
	_, err := uc.UpdateProduct(context.Background(), "NO-EXISTE", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas, ajustes y traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_EntradaYAjuste(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	out, err := uc.AddStock(context.Background(), "SKU-001", dto.AddStockRequest{
		Quantity: 5, Kind: ledger.StockKindEntry,
	}, "operador")
	require.NoError(t, err)
	assert.Equal(t, int64(15), out.Quantity)
	assert.Contains(t, out.History[len(out.History)-1].Description, "Entrada de 5")
	assert.Contains(t, out.History[len(out.History)-1].Description, "Nuevo total: 15")

	out, err = uc.AddStock(context.Background(), "SKU-001", dto.AddStockRequest{
		Quantity: 2, Kind: ledger.StockKindAdjustment,
	}, "operador")
	require.NoError(t, err)
	assert.Equal(t, int64(17), out.Quantity)
	assert.Equal(t, entity.HistoryTypeAdjustment, out.History[len(out.History)-1].Type)
	assert.Contains(t, out.History[len(out.History)-1].Description, "Ajuste de 2")
}

func TestAddStock_RechazaCantidadYKindInvalidos(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	_, err := uc.AddStock(context.Background(), "SKU-001", dto.AddStockRequest{Quantity: 0, Kind: ledger.StockKindEntry}, "operador")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.AddStock(context.Background(), "SKU-001", dto.AddStockRequest{Quantity: 3, Kind: "donation"}, "operador")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMoveProduct_AsientaTrasladoConDeltaCero(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	out, err := uc.MoveProduct(context.Background(), "SKU-001", dto.MoveProductRequest{
		NewLocation: "Estante B3",
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, "Estante B3", out.Location)
	last := out.History[len(out.History)-1]
	assert.Equal(t, entity.HistoryTypeMovement, last.Type)
	assert.Equal(t, int64(0), last.QuantityAffected)
	assert.Contains(t, last.Description, "Movido de 'Estante A1' a 'Estante B3'")
	assert.Equal(t, int64(10), out.Quantity, "el traslado no cambia stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckoutStock_DescuentaYAsignaSecuencia(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	out, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 4, WithdrawnBy: "Juan Pérez",
	}, "operador")
	require.NoError(t, err)

	assert.Equal(t, int64(1), out.SequenceID)
	assert.Equal(t, "#000001", out.Sequence)
	assert.Equal(t, entity.CheckoutStatusActive, out.Status)
	assert.Equal(t, int64(4), out.MaxReversible)
	assert.Equal(t, "Juan Pérez", out.WithdrawnBy)
	assert.Equal(t, "operador", out.SystemUser)

	product, err := uc.GetProductBySKU(context.Background(), "SKU-001")
	require.NoError(t, err)
	assert.Equal(t, int64(6), product.Quantity)
	last := product.History[len(product.History)-1]
	assert.Equal(t, entity.HistoryTypeExit, last.Type)
	assert.Contains(t, last.Description, `retirada por "Juan Pérez"`)
}

func TestCheckoutStock_SecuenciaMonotona(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 100)

	for i := int64(1); i <= 5; i++ {
		out, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
			SKU: "SKU-001", Quantity: 1, WithdrawnBy: "Juan",
		}, "operador")
		require.NoError(t, err)
		assert.Equal(t, i, out.SequenceID, "la secuencia crece de a uno")
	}
}

func TestCheckoutStock_RechazaSobregiro(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 3)

	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 4, WithdrawnBy: "Juan",
	}, "operador")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "disponible 3, solicitado 4")

	// El rechazo no debe consumir número de secuencia.
	out, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 1, WithdrawnBy: "Juan",
	}, "operador")
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.SequenceID)
}

func TestCheckoutStock_ProductoInexistenteYCantidadInvalida(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)

	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "NO-EXISTE", Quantity: 1, WithdrawnBy: "Juan",
	}, "operador")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 0, WithdrawnBy: "Juan",
	}, "operador")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reversiones
// ──────────────────────────────────────────────────────────────────────────────

func TestReverseCheckout_TotalYReintento(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)
	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 4, WithdrawnBy: "Juan",
	}, "operador")
	require.NoError(t, err)

	out, err := uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: 4}, "supervisora")
	require.NoError(t, err)
	assert.Equal(t, "Reversión realizada con éxito.", out.Message)
	assert.Equal(t, entity.CheckoutStatusReversed, out.Checkout.Status)
	assert.Equal(t, int64(0), out.Checkout.MaxReversible)

	product, err := uc.GetProductBySKU(context.Background(), "SKU-001")
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Quantity, "la reversión total devuelve todo el stock")
	last := product.History[len(product.History)-1]
	assert.Equal(t, entity.HistoryTypeReversal, last.Type)
	assert.Contains(t, last.Description, "de la salida #000001")

	// Reintento sobre un registro ya revertido por completo.
	_, err = uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: 1}, "supervisora")
	assert.ErrorIs(t, err, domain.ErrAlreadyReversed)
}

func TestReverseCheckout_ParcialYExceso(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)
	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 5, WithdrawnBy: "Juan",
	}, "operador")
	require.NoError(t, err)

	out, err := uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: 2}, "supervisora")
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutStatusPartiallyReversed, out.Checkout.Status)
	assert.Equal(t, int64(2), out.Checkout.ReversedQuantity)
	assert.Equal(t, int64(3), out.Checkout.MaxReversible)
	require.Len(t, out.Checkout.ReversalHistory, 1)
	assert.Equal(t, "supervisora", out.Checkout.ReversalHistory[0].Username)

	// Pedir más de lo que queda reversible: el error informa el máximo.
	_, err = uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: 4}, "supervisora")
	require.ErrorIs(t, err, domain.ErrExceedsReversible)
	assert.Contains(t, err.Error(), "la cantidad máxima a revertir es 3")

	// Y el exceso rechazado no cambió nada.
	rec, err := uc.GetCheckoutBySequenceID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.ReversedQuantity)
}

func TestReverseCheckout_OrdenDeValidaciones(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)
	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 5, WithdrawnBy: "Juan",
	}, "operador")
	require.NoError(t, err)

	// Registro inexistente gana a cualquier otra validación.
	_, err = uc.ReverseCheckout(context.Background(), 99, dto.ReversalRequest{Quantity: 0}, "supervisora")
	assert.ErrorIs(t, err, domain.ErrCheckoutNotFound)

	// Cantidad no positiva sobre un registro reversible.
	_, err = uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: 0}, "supervisora")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: -2}, "supervisora")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReverseCheckout_AcumulaReversionesSucesivas(t *testing.T) {
	uc := newTestLedger(t)
	createProduct(t, uc, "SKU-001", 10)
	_, err := uc.CheckoutStock(context.Background(), dto.CheckoutRequest{
		SKU: "SKU-001", Quantity: 6, WithdrawnBy: "Juan",
	}, "operador")
	require.NoError(t, err)

	for _, qty := range []int64{1, 2, 3} {
		_, err := uc.ReverseCheckout(context.Background(), 1, dto.ReversalRequest{Quantity: qty}, "supervisora")
		require.NoError(t, err)
	}

	rec, err := uc.GetCheckoutBySequenceID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(6), rec.ReversedQuantity)
	assert.Equal(t, entity.CheckoutStatusReversed, rec.Status)
	assert.Len(t, rec.ReversalHistory, 3, "cada reversión deja su propio detalle")

	product, err := uc.GetProductBySKU(context.Background(), "SKU-001")
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariantes de conservación e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ConservacionTrasOperacionesMixtas(t *testing.T) {
	uc := newTestLedger(t)
	ctx := context.Background()
	createProduct(t, uc, "SKU-001", 10)

	_, err := uc.AddStock(ctx, "SKU-001", dto.AddStockRequest{Quantity: 7, Kind: ledger.StockKindEntry}, "operador")
	require.NoError(t, err)
	_, err = uc.CheckoutStock(ctx, dto.CheckoutRequest{SKU: "SKU-001", Quantity: 4, WithdrawnBy: "Juan"}, "operador")
	require.NoError(t, err)
	_, err = uc.MoveProduct(ctx, "SKU-001", dto.MoveProductRequest{NewLocation: "Bodega 2"}, "operador")
	require.NoError(t, err)
	_, err = uc.ReverseCheckout(ctx, 1, dto.ReversalRequest{Quantity: 2}, "supervisora")
	require.NoError(t, err)
	_, err = uc.AddStock(ctx, "SKU-001", dto.AddStockRequest{Quantity: 1, Kind: ledger.StockKindAdjustment}, "operador")
	require.NoError(t, err)

	product, err := uc.GetProductBySKU(ctx, "SKU-001")
	require.NoError(t, err)
	assert.Equal(t, int64(16), product.Quantity)
	assert.Equal(t, product.Quantity, historyBalance(t, product.History),
		"la cantidad debe igualar la suma con signo del historial")
	assert.Len(t, product.History, 6, "cada operación asienta exactamente una entrada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListProducts_OrdenadoPorNombre(t *testing.T) {
	uc := newTestLedger(t)
	ctx := context.Background()
	for _, p := range []struct {
		sku, name string
	}{
		{"SKU-C", "Zapato de seguridad"},
		{"SKU-A", "Arnés"},
		{"SKU-B", "casco minero"}, // minúscula a propósito: el orden ignora mayúsculas
	} {
		_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{SKU: p.sku, Name: p.name, Quantity: 1}, "operador")
		require.NoError(t, err)
	}

	out, err := uc.ListProducts(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, 3, out.Page.Total)
	assert.Equal(t, "Arnés", out.Items[0].Name)
	assert.Equal(t, "casco minero", out.Items[1].Name)
	assert.Equal(t, "Zapato de seguridad", out.Items[2].Name)
}

func TestListCheckouts_MasRecientePrimero(t *testing.T) {
	uc := newTestLedger(t)
	ctx := context.Background()
	createProduct(t, uc, "SKU-001", 100)
	for i := 0; i < 3; i++ {
		_, err := uc.CheckoutStock(ctx, dto.CheckoutRequest{SKU: "SKU-001", Quantity: 1, WithdrawnBy: "Juan"}, "operador")
		require.NoError(t, err)
	}

	out, err := uc.ListCheckouts(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.Equal(t, int64(3), out.Items[0].SequenceID)
	assert.Equal(t, int64(2), out.Items[1].SequenceID)
	assert.Equal(t, int64(1), out.Items[2].SequenceID)
}
