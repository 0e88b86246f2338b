package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// dateLayout formato de fecha calendario de la API (sin hora).
const dateLayout = "2006-01-02"

// RegisterMovementFromRequest adapta el request HTTP a los casos de uso del ledger.
// Usar desde handlers HTTP que tengan userID y dto.RegisterMovementRequest.
func (uc *LedgerUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.Product, *entity.StockMovement, error) {
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.MovementTypeAdd:
		unitCost := decimal.Zero
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		return uc.RegisterAddMovement(ctx, AddMovementInput{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitCost:  unitCost,
			Date:      date,
		})
	case entity.MovementTypeRemove:
		return uc.RegisterRemoveMovement(ctx, RemoveMovementInput{
			UserID:    userID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Date:      date,
		})
	default:
		return nil, nil, domain.ErrInvalidInput
	}
}
