// Package pdf genera la hoja imprimible de códigos de canje.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Academia + título     │  Fecha + total de códigos   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: QR | Código | Valor | Usos | Expira | Estado         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de canje                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/academia-admin/internal/application/ports"
	"github.com/jhoicas/academia-admin/internal/application/usecase"
	"github.com/jhoicas/academia-admin/internal/domain/entity"
)

var _ ports.RedeemCodePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.RedeemCodePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	org string
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador; org aparece en la cabecera.
func NewMarotoPDFGenerator(org string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{org: nonEmpty(org, "Academia"), now: time.Now}
}

// GenerateRedeemCodesPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateRedeemCodesPDF(ctx context.Context, title string, codes []entity.RedeemCode) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := g.now()
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.org, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.org, title, now, len(codes)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(codes) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("No hay códigos para la búsqueda indicada.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	for _, r := range codeRows(codes, now) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(org, title string, now time.Time, total int) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(org, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(title, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Fecha: "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("%d códigos", total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("QR", 2, align.Center),
		h("Código", 3, align.Left),
		h("Valor", 2, align.Right),
		h("Usos", 1, align.Center),
		h("Expira", 2, align.Center),
		h("Estado", 2, align.Center),
	)
}

// codeRows una fila por código, con su QR para canje desde el móvil.
func codeRows(codes []entity.RedeemCode, now time.Time) []core.Row {
	result := make([]core.Row, 0, len(codes))
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 7, Left: 1, Right: 1}))
	}
	for _, c := range codes {
		expires := "—"
		if c.ExpiresAt != nil {
			expires = c.ExpiresAt.Format("02/01/2006")
		}
		result = append(result, row.New(20).Add(
			col.New(2).Add(code.NewQr(c.Code, props.Rect{Percent: 90, Center: true})),
			col.New(3).Add(text.New(c.Code, props.Text{
				Style: fontstyle.Bold, Size: 10, Family: "courier", Top: 7, Left: 1,
			})),
			cell("$"+FormatMoney(c.Value), 2, align.Right),
			cell(usecase.UsesLabel(c), 1, align.Center),
			cell(expires, 2, align.Center),
			cell(strings.ToUpper(c.Status(now)), 2, align.Center),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Cada código puede canjearse desde la sección \"Canjear código\" de la plataforma "+
				"mientras esté activo y no haya expirado.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con puntos de miles y coma decimal (dos decimales).
// Ej: 25000 → "25.000,00", 1234567.5 → "1.234.567,50"
func FormatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if d.IsNegative() {
		return "-" + out
	}
	return out
}

// groupThousands inserta puntos de miles en un string numérico sin signo.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
