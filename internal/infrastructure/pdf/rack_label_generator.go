// Package pdf genera la etiqueta imprimible de un rack con Maroto v2.
//
// Layout de la página A6 apaisada:
//
//	┌──────────────────────────────────────────┐
//	│  CÓDIGO DEL RACK        │  QR(código)    │
//	│  Zona / corredor / ...  │                │
//	│  ──────────────────────────────────────  │
//	│  Req. | Enc. | Artículo | Cant.          │
//	└──────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/armazem-api/internal/application/labels"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// maxLabelLines líneas que caben en la etiqueta; el resto se resume.
const maxLabelLines = 8

var _ labels.RackLabelGenerator = (*MarotoLabelGenerator)(nil)

// MarotoLabelGenerator implementa labels.RackLabelGenerator usando Maroto v2.
type MarotoLabelGenerator struct{}

// NewMarotoLabelGenerator construye el generador.
func NewMarotoLabelGenerator() *MarotoLabelGenerator { return &MarotoLabelGenerator{} }

// GenerateRackLabel genera el PDF y devuelve sus bytes.
func (g *MarotoLabelGenerator) GenerateRackLabel(_ context.Context, label labels.RackLabel) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A6).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(6).WithRightMargin(6).
		WithTopMargin(6).WithBottomMargin(6).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Rack "+label.Rack.Code, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(label))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(contentRows(label.Lines)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: código y posición (izq), QR con el código (der).
func headerRow(label labels.RackLabel) core.Row {
	rk := label.Rack
	position := fmt.Sprintf("Zona %s  |  Corredor %02d  |  Rack %02d  |  Nivel %02d  |  Columna %02d",
		label.ZoneName, rk.Aisle, rk.Rack, rk.Level, rk.Column)

	return row.New(34).Add(
		col.New(8).Add(
			text.New(rk.Code, props.Text{
				Style: fontstyle.Bold, Size: 20, Color: colorPrimary, Top: 6,
			}),
			text.New(position, props.Text{
				Size: 7, Top: 20, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(rk.Code, props.Rect{
			Percent: 95,
			Center:  true,
		})),
	)
}

func contentRows(lines []labels.LabelLine) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New("Rack vacío", props.Text{
			Size: 8, Top: 2, Color: colorGray, Align: align.Center,
		})))}
	}

	header := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a, Top: 1}))
	}
	rows := []core.Row{row.New(5).Add(
		header("Requisición", 3, align.Left),
		header("Encomienda", 3, align.Left),
		header("Artículo", 4, align.Left),
		header("Cant.", 2, align.Right),
	)}

	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	for i, l := range lines {
		if i == maxLabelLines {
			rows = append(rows, row.New(5).Add(
				cell(fmt.Sprintf("… y %d líneas más", len(lines)-maxLabelLines), 12, align.Left),
			))
			break
		}
		article := l.Key.ArticleCode
		if l.Description != "" {
			article += " " + l.Description
		}
		rows = append(rows, row.New(5).Add(
			cell(l.Key.RequisitionNumber, 3, align.Left),
			cell(l.Key.OrderNumber, 3, align.Left),
			cell(article, 4, align.Left),
			cell(l.Quantity.String()+" "+l.Unit, 2, align.Right),
		))
	}
	return rows
}
