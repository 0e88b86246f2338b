package dto

import "github.com/shopspring/decimal"

// MonthlyReportResponse reporte de movimientos de un mes calendario.
type MonthlyReportResponse struct {
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	Movements []MovementResponse   `json:"movements"`
	Summary   MonthlyReportSummary `json:"summary"`
}

// MonthlyReportSummary totales del mes.
type MonthlyReportSummary struct {
	AddCount         int             `json:"add_count"`
	RemoveCount      int             `json:"remove_count"`
	UnitsAdded       int64           `json:"units_added"`
	UnitsRemoved     int64           `json:"units_removed"`
	TotalAddedCost   decimal.Decimal `json:"total_added_cost"`
	TotalRemovedCost decimal.Decimal `json:"total_removed_cost"`
}
