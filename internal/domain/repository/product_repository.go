package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Quantity/Cost/UnitPrice solo se tocan vía UpdateStockAndCost y UpdateQuantity,
// que usa el motor de inventario dentro de una transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id string) (*entity.Product, error)
	GetByUserAndName(userID, name string) (*entity.Product, error)
	GetByUserAndBarcode(userID, barcode string) (*entity.Product, error)
	// Update actualiza solo campos editables (nombre, categoría, imagen, barcode, min_stock).
	Update(product *entity.Product) error
	// UpdateStockAndCost aplica una entrada: cantidad, costo promedio y último costo de lote.
	UpdateStockAndCost(productID string, quantity int64, cost, unitPrice decimal.Decimal) error
	// UpdateQuantity aplica una salida: solo cambia la cantidad.
	UpdateQuantity(productID string, quantity int64) error
	ListByUser(userID string, limit, offset int) ([]*entity.Product, error)
	CountByUserAndCategory(userID, category string) (int64, error)
	ListLowStock() ([]*entity.LowStockItem, error)
	Delete(id string) error
}
