package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/domain"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
	"github.com/jhoicas/stocktrack-api/internal/domain/repository"
)

// ReportPDFGenerator genera la representación PDF del reporte mensual.
type ReportPDFGenerator interface {
	GenerateMonthlyReportPDF(ctx context.Context, year int, month time.Month, movements []*entity.StockMovement, summary dto.MonthlyReportSummary) ([]byte, error)
}

// ReportUseCase reportes de movimientos (lado de lectura del ledger).
type ReportUseCase struct {
	movRepo repository.StockMovementRepository
	pdfGen  ReportPDFGenerator
}

// NewReportUseCase construye el caso de uso. pdfGen puede ser nil si no se exporta PDF.
func NewReportUseCase(movRepo repository.StockMovementRepository, pdfGen ReportPDFGenerator) *ReportUseCase {
	return &ReportUseCase{movRepo: movRepo, pdfGen: pdfGen}
}

// Monthly arma el reporte de movimientos de un mes calendario con sus totales.
func (uc *ReportUseCase) Monthly(userID string, year int, month time.Month) (*dto.MonthlyReportResponse, error) {
	if year < 2000 || year > 2200 || month < time.January || month > time.December {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	movements, err := uc.movRepo.ListByUserAndPeriod(userID, from, to)
	if err != nil {
		return nil, err
	}

	summary := summarize(movements)
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MonthlyReportResponse{
		Year:      year,
		Month:     int(month),
		Movements: items,
		Summary:   summary,
	}, nil
}

// MonthlyPDF genera el PDF del reporte mensual.
func (uc *ReportUseCase) MonthlyPDF(ctx context.Context, userID string, year int, month time.Month) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrInvalidInput
	}
	if year < 2000 || year > 2200 || month < time.January || month > time.December {
		return nil, domain.ErrInvalidInput
	}
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	movements, err := uc.movRepo.ListByUserAndPeriod(userID, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateMonthlyReportPDF(ctx, year, month, movements, summarize(movements))
}

// ListProductMovements lista el historial de movimientos de un producto.
func (uc *ReportUseCase) ListProductMovements(productID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func summarize(movements []*entity.StockMovement) dto.MonthlyReportSummary {
	s := dto.MonthlyReportSummary{
		TotalAddedCost:   decimal.Zero,
		TotalRemovedCost: decimal.Zero,
	}
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeAdd:
			s.AddCount++
			s.UnitsAdded += m.Quantity
			s.TotalAddedCost = s.TotalAddedCost.Add(m.TotalCost)
		case entity.MovementTypeRemove:
			s.RemoveCount++
			s.UnitsRemoved += m.Quantity
			s.TotalRemovedCost = s.TotalRemovedCost.Add(m.TotalCost)
		}
	}
	return s
}

// ToMovementResponse mapea la entidad al DTO (fecha en formato YYYY-MM-DD).
func ToMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		Date:        m.Date.Format("2006-01-02"),
		CreatedAt:   m.CreatedAt,
	}
}
