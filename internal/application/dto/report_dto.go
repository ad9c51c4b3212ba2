package dto

import "github.com/shopspring/decimal"

// ValuationItem valorización de un producto (cantidad × costo unitario).
type ValuationItem struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	StockValue decimal.Decimal `json:"stock_value"`
}

// ValuationResponse valorización total del inventario.
type ValuationResponse struct {
	Items      []ValuationItem `json:"items"`
	TotalValue decimal.Decimal `json:"total_value"`
	TotalUnits int64           `json:"total_units"`
	SKUCount   int             `json:"sku_count"`
}

// LowStockItem producto en o por debajo de su stock mínimo.
type LowStockItem struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Quantity int64  `json:"quantity"`
	MinStock int64  `json:"min_stock"`
	Deficit  int64  `json:"deficit"` // cuánto falta para superar el mínimo
}

// LowStockResponse listado de reposición.
type LowStockResponse struct {
	Items []LowStockItem `json:"items"`
}
