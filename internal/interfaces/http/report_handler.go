package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
)

// ReportHandler maneja los reportes mensuales (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Monthly godoc
// @Summary      Reporte mensual de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200    {object}  dto.MonthlyReportResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/monthly [get]
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	year, month, ok := reportPeriod(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month (1-12) son requeridos"})
	}
	out, err := h.uc.Monthly(GetUserID(c), year, month)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// MonthlyPDF godoc
// @Summary      Reporte mensual en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  true  "Año"
// @Param        month  query  int  true  "Mes (1-12)"
// @Success      200    {file}  file
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/monthly/pdf [get]
func (h *ReportHandler) MonthlyPDF(c *fiber.Ctx) error {
	year, month, ok := reportPeriod(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "year y month (1-12) son requeridos"})
	}
	pdfBytes, err := h.uc.MonthlyPDF(c.UserContext(), GetUserID(c), year, month)
	if err != nil {
		return writeDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte-%04d-%02d.pdf"`, year, int(month)))
	return c.Send(pdfBytes)
}

func reportPeriod(c *fiber.Ctx) (int, time.Month, bool) {
	year := c.QueryInt("year", 0)
	month := c.QueryInt("month", 0)
	if year == 0 || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
