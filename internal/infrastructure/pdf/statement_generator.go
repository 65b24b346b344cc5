// Package pdf genera el extracto de un préstamo con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ        │  Contrato + Fecha emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONDICIONES: banco, valor, tasa, plazo, cuota              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Vencimiento | Cuota | Interés | Estado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: pagado / por pagar          QR con el contrato    │
//	└─────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/pkg/format"
)

var _ ports.StatementPDFGenerator = (*StatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOverdue = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var statusLabels = map[string]string{
	entity.InstallmentPaid:    "Pagada",
	entity.InstallmentPending: "Pendiente",
	entity.InstallmentOverdue: "Vencida",
}

// StatementGenerator implementa ports.StatementPDFGenerator con Maroto v2.
type StatementGenerator struct {
	fmt *format.Formatter
}

// NewStatementGenerator construye el generador; los montos salen con el formato del locale.
func NewStatementGenerator(f *format.Formatter) *StatementGenerator {
	return &StatementGenerator{fmt: f}
}

// GenerateLoanStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateLoanStatement(_ context.Context, st ports.LoanStatement) ([]byte, error) {
	if st.Loan == nil || st.Company == nil {
		return nil, fmt.Errorf("pdf: extracto sin préstamo o empresa")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de préstamo", true).
		WithAuthor(st.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.termsRows(st.Loan)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.installmentRows(st.Installments)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(st.Loan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StatementGenerator) headerRow(st ports.LoanStatement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(st.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+nonEmpty(st.Company.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("EXTRACTO DE PRÉSTAMO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(st.Loan.ContractNumber, st.Loan.ID), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+g.fmt.Date(st.IssuedAt), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *StatementGenerator) termsRows(l *entity.Loan) []core.Row {
	pair := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		)
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(nonEmpty(l.Description, "Préstamo")+" · "+nonEmpty(l.Bank, "-"), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(11).Add(
			pair("Valor contratado", g.fmt.Currency(l.Principal)),
			pair("Valor financiado", g.fmt.Currency(l.FinancedOrPrincipal())),
			pair("Cuota", g.fmt.Currency(l.InstallmentValue)),
			pair("Plazo", fmt.Sprintf("%d cuotas", l.Installments)),
		),
		row.New(11).Add(
			pair("Tasa mensual", g.fmt.Percent(l.MonthlyRate)),
			pair("Tasa nominal a.a.", g.fmt.Percent(l.NominalAnnualRate)),
			pair("Tasa efectiva a.a.", g.fmt.Percent(l.EffectiveAnnualRate)),
			pair("Inicio", g.fmt.Date(l.StartDate)),
		),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Vencimiento", 3, align.Left),
		h("Cuota", 3, align.Right),
		h("Interés", 3, align.Right),
		h("Estado", 2, align.Center),
	)
}

func (g *StatementGenerator) installmentRows(list []*entity.Installment) []core.Row {
	rows := make([]core.Row, 0, len(list))
	for _, i := range list {
		status := props.Text{Size: 8, Align: align.Center, Top: 1}
		if i.Status == entity.InstallmentOverdue {
			status.Color = colorOverdue
			status.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(i.Sequence), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.fmt.Date(i.DueDate), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(g.fmt.Currency(i.Value), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.fmt.Currency(i.Interest), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(statusLabels[i.Status], i.Status), status)),
		))
	}
	return rows
}

func (g *StatementGenerator) totalsRow(l *entity.Loan) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(nonEmpty(l.ContractNumber, l.ID), props.Rect{Percent: 90, Center: true})),
		col.New(3),
		col.New(3).Add(
			label("Pagado:", 4),
			label("Por pagar:", 10),
			label("Intereses totales:", 16),
		),
		col.New(3).Add(
			value(g.fmt.Currency(l.AmountPaid), 4),
			value(g.fmt.Currency(l.AmountToPay), 10),
			value(g.fmt.Currency(l.TotalInterest), 16),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
