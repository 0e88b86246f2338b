package repository

import (
	"time"

	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para movimientos de stock.
// Solo inserta y consulta: los movimientos son inmutables (auditoría).
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByUserAndPeriod lista los movimientos de todos los productos del usuario
	// con fecha en [from, to], en orden cronológico (reportes mensuales).
	ListByUserAndPeriod(userID string, from, to time.Time) ([]*entity.StockMovement, error)
	CountByProduct(productID string) (int64, error)
}
