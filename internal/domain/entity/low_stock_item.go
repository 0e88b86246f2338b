package entity

// LowStockItem es la vista de un producto bajo su umbral de stock,
// con el email del dueño para notificaciones (resumen diario).
type LowStockItem struct {
	UserEmail   string
	ProductID   string
	ProductName string
	Quantity    int64
	MinStock    int64
}
