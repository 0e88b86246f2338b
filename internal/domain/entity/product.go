package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un usuario.
// Quantity y Cost se actualizan únicamente vía movimientos (motor de inventario);
// Cost es el costo promedio ponderado y UnitPrice el costo del último lote comprado.
type Product struct {
	ID        string
	UserID    string
	Name      string
	Category  string          // etiqueta libre, administrada por el usuario
	Quantity  int64           // unidades en mano; nunca negativo
	Cost      decimal.Decimal // costo promedio ponderado (inicia en el costo inicial)
	UnitPrice decimal.Decimal // costo unitario del último lote
	MinStock  int64           // umbral de alerta de stock bajo
	Image     string          // referencia opaca opcional (ej. data URI)
	Barcode   string          // identificador externo, solo para búsqueda
	CreatedAt time.Time
	UpdatedAt time.Time
}
