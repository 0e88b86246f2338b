package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterProductRequest entrada para registrar un producto.
// Si InitialQuantity > 0 se registra además un movimiento de entrada con fecha de hoy.
type RegisterProductRequest struct {
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Category        string          `json:"category"`
	Barcode         string          `json:"barcode"`
	Image           string          `json:"image"`
	MinStock        int64           `json:"min_stock" validate:"min=0"`
	InitialQuantity int64           `json:"initial_quantity" validate:"min=0"`
	InitialUnitCost decimal.Decimal `json:"initial_unit_cost"`
}

// UpdateProductRequest entrada para actualizar un producto
// (sin Quantity ni Cost: se manejan vía movimientos).
type UpdateProductRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category"`
	Barcode  *string `json:"barcode"`
	Image    *string `json:"image"`
	MinStock *int64  `json:"min_stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto, con su nivel de stock calculado.
type ProductResponse struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Quantity   int64           `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	MinStock   int64           `json:"min_stock"`
	Image      string          `json:"image,omitempty"`
	Barcode    string          `json:"barcode,omitempty"`
	StockLevel string          `json:"stock_level"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockAlertResponse producto en alerta (LOW_STOCK u OUT_OF_STOCK).
type StockAlertResponse struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Quantity   int64  `json:"quantity"`
	MinStock   int64  `json:"min_stock"`
	StockLevel string `json:"stock_level"`
}
