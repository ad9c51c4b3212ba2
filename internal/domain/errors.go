package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los
// devuelven directamente o envueltos con %w para agregar contexto; los
// handlers HTTP los traducen a códigos de estado.
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrProductNotFound  = errors.New("producto no encontrado")
	ErrCheckoutNotFound = errors.New("registro de salida no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidQuantity  = errors.New("la cantidad debe ser un entero positivo")
	ErrDuplicateSKU     = errors.New("ya existe un producto con ese SKU")
	ErrUsernameTaken    = errors.New("el nombre de usuario ya está registrado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrUserBlocked      = errors.New("usuario bloqueado")

	// Errores del ledger de stock.
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyReversed   = errors.New("esta salida ya fue revertida en su totalidad")
	ErrExceedsReversible = errors.New("la cantidad excede el máximo reversible")
)
