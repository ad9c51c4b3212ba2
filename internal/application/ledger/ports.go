package ledger

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando
// repositorios atados a esa transacción. Garantiza que cada operación del
// ledger (producto + historial + registro de salida + contador de secuencia)
// se aplique completa o no se aplique.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		checkoutRepo repository.CheckoutRepository,
	) error) error
}
