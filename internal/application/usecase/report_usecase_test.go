package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

type stubMovementRepo struct {
	movements []*entity.StockMovement
}

func (r *stubMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }

func (r *stubMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListByUserAndPeriod(userID string, from, to time.Time) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if m.CreatedBy == userID && !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) CountByProduct(productID string) (int64, error) {
	n, _ := r.ListByProduct(productID, nil, nil, 0, 0)
	return int64(len(n)), nil
}

func mov(typ string, qty int64, unitCost string, date time.Time) *entity.StockMovement {
	uc := decimal.RequireFromString(unitCost)
	return &entity.StockMovement{
		ProductID:   "p-1",
		ProductName: "Widget",
		Type:        typ,
		Quantity:    qty,
		UnitCost:    uc,
		TotalCost:   uc.Mul(decimal.NewFromInt(qty)),
		Date:        date,
		CreatedBy:   testUserID,
	}
}

func TestMonthly_ResumenYFiltroPorMes(t *testing.T) {
	repo := &stubMovementRepo{movements: []*entity.StockMovement{
		mov(entity.MovementTypeAdd, 10, "5.00", time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)),
		mov(entity.MovementTypeAdd, 5, "8.00", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)),
		mov(entity.MovementTypeRemove, 4, "6.00", time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)),
		// Fuera del mes consultado:
		mov(entity.MovementTypeAdd, 99, "1.00", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)),
	}}
	uc := usecase.NewReportUseCase(repo, nil)

	report, err := uc.Monthly(testUserID, 2024, time.January)
	require.NoError(t, err)

	assert.Len(t, report.Movements, 3, "solo movimientos de enero")
	assert.Equal(t, 2, report.Summary.AddCount)
	assert.Equal(t, 1, report.Summary.RemoveCount)
	assert.Equal(t, int64(15), report.Summary.UnitsAdded)
	assert.Equal(t, int64(4), report.Summary.UnitsRemoved)
	// 10*5.00 + 5*8.00 = 90.00
	assert.True(t, report.Summary.TotalAddedCost.Equal(decimal.RequireFromString("90.00")))
	// 4*6.00 = 24.00
	assert.True(t, report.Summary.TotalRemovedCost.Equal(decimal.RequireFromString("24.00")))
	assert.Equal(t, "2024-01-05", report.Movements[0].Date)
}

func TestMonthly_MesInvalido(t *testing.T) {
	uc := usecase.NewReportUseCase(&stubMovementRepo{}, nil)
	_, err := uc.Monthly(testUserID, 2024, time.Month(13))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMonthly_MesVacio(t *testing.T) {
	uc := usecase.NewReportUseCase(&stubMovementRepo{}, nil)
	report, err := uc.Monthly(testUserID, 2024, time.June)
	require.NoError(t, err)
	assert.Empty(t, report.Movements)
	assert.Equal(t, 0, report.Summary.AddCount)
	assert.True(t, report.Summary.TotalAddedCost.IsZero())
}

// La eliminación de un producto con historial queda bloqueada (auditoría).
func TestProductDelete_BloqueadaConHistorial(t *testing.T) {
	movRepo := &stubMovementRepo{movements: []*entity.StockMovement{
		mov(entity.MovementTypeAdd, 1, "1.00", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
	}}
	productRepo := &stubProductRepoWithGet{product: &entity.Product{ID: "p-1", UserID: testUserID, Name: "Widget"}}
	uc := usecase.NewProductUseCase(productRepo, movRepo)

	err := uc.Delete(testUserID, "p-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, productRepo.deleted)
}

func TestProductDelete_SinHistorialPermitida(t *testing.T) {
	productRepo := &stubProductRepoWithGet{product: &entity.Product{ID: "p-1", UserID: testUserID, Name: "Widget"}}
	uc := usecase.NewProductUseCase(productRepo, &stubMovementRepo{})

	err := uc.Delete(testUserID, "p-1")
	require.NoError(t, err)
	assert.True(t, productRepo.deleted)
}

// stubProductRepoWithGet extiende el stub base con un producto fijo y registro de Delete.
type stubProductRepoWithGet struct {
	stubProductRepo
	product *entity.Product
	deleted bool
}

func (r *stubProductRepoWithGet) GetByID(id string) (*entity.Product, error) {
	if r.product != nil && r.product.ID == id {
		cp := *r.product
		return &cp, nil
	}
	return nil, nil
}

func (r *stubProductRepoWithGet) Delete(id string) error {
	r.deleted = true
	return nil
}
