package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeAdd    = "add"    // entrada
	MovementTypeRemove = "remove" // salida
)

// StockMovement representa un movimiento de stock (entrada o salida).
// Es inmutable una vez creado: el repositorio no expone update ni delete
// (semántica de pista de auditoría). ProductName se desnormaliza para que
// el historial sobreviva a renombres del producto.
type StockMovement struct {
	ID          string
	ProductID   string
	ProductName string
	Type        string          // add, remove
	Quantity    int64           // siempre positivo; el tipo indica la dirección
	UnitCost    decimal.Decimal // add: costo del lote; remove: costo promedio al momento
	TotalCost   decimal.Decimal
	Date        time.Time // fecha calendario del movimiento (sin hora)
	CreatedAt   time.Time
	CreatedBy   string // UserID
}
