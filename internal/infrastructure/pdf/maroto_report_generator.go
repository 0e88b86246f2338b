// Package pdf implementa la generación del reporte mensual de movimientos
// de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Periodo (mes/año)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant | Costo Unit | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: entradas / salidas / costos acumulados             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stocktrack-api/internal/application/dto"
	"github.com/jhoicas/stocktrack-api/internal/application/usecase"
	"github.com/jhoicas/stocktrack-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 20, Green: 110, Blue: 60}
	colorRed     = &props.Color{Red: 160, Green: 40, Blue: 40}
)

var monthNames = [...]string{
	"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa usecase.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMonthlyReportPDF genera el PDF del reporte mensual y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateMonthlyReportPDF(
	_ context.Context,
	year int,
	month time.Month,
	movements []*entity.StockMovement,
	summary dto.MonthlyReportSummary,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte mensual de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(year, month))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(movements) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el periodo.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range tableMovementRows(movements) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRows(summary)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

var _ usecase.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y periodo del reporte.
func headerRow(year int, month time.Month) core.Row {
	periodo := fmt.Sprintf("%s %d", monthNames[int(month)], year)
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE MENSUAL DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Movimientos de stock del periodo", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(periodo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 4,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de movimientos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Costo Unit.", 2, align.Right),
		h("Costo Total", 2, align.Right),
	)
}

// tableMovementRows: una fila por movimiento, en orden cronológico.
func tableMovementRows(movements []*entity.StockMovement) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		tipo, color := "Entrada", colorGreen
		if mv.Type == entity.MovementTypeRemove {
			tipo, color = "Salida", colorRed
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				mv.Date.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				mv.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				tipo,
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: color},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", mv.Quantity),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+mv.UnitCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+mv.TotalCost.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// summaryRows: bloque de resumen del periodo alineado a la derecha.
func summaryRows(s dto.MonthlyReportSummary) []core.Row {
	label := func(txt string) core.Component {
		return text.New(txt, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(txt string, c *props.Color) core.Component {
		return text.New(txt, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}

	return []core.Row{
		row.New(8).Add(
			col.New(6),
			col.New(4).Add(label(fmt.Sprintf("Entradas (%d mov.):", s.AddCount))),
			col.New(2).Add(value(fmt.Sprintf("%d uds", s.UnitsAdded), colorGreen)),
		),
		row.New(6).Add(
			col.New(6),
			col.New(4).Add(label("Costo de entradas:")),
			col.New(2).Add(value("$"+s.TotalAddedCost.StringFixed(2), colorGreen)),
		),
		row.New(6).Add(
			col.New(6),
			col.New(4).Add(label(fmt.Sprintf("Salidas (%d mov.):", s.RemoveCount))),
			col.New(2).Add(value(fmt.Sprintf("%d uds", s.UnitsRemoved), colorRed)),
		),
		row.New(6).Add(
			col.New(6),
			col.New(4).Add(label("Costo de salidas:")),
			col.New(2).Add(value("$"+s.TotalRemovedCost.StringFixed(2), colorRed)),
		),
	}
}
