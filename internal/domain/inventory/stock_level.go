package inventory

// StockLevel clasifica el nivel de stock de un producto. Se calcula al leer,
// nunca se persiste.
type StockLevel string

const (
	StockLevelOut = StockLevel("OUT_OF_STOCK") // sin existencias
	StockLevelLow = StockLevel("LOW_STOCK")    // 0 < cantidad <= umbral
	StockLevelOK  = StockLevel("OK")
)

// ClassifyStockLevel clasifica según cantidad en mano y umbral mínimo.
func ClassifyStockLevel(quantity, minStock int64) StockLevel {
	switch {
	case quantity <= 0:
		return StockLevelOut
	case quantity <= minStock:
		return StockLevelLow
	default:
		return StockLevelOK
	}
}
