// Package format agrupa los formateadores de presentación (moneda, porcentaje,
// fecha) según el locale configurado. Son funciones puras: el redondeo a
// centavos ocurre solo aquí, nunca en los cálculos.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea valores para un locale y una moneda.
type Formatter struct {
	tag  language.Tag
	unit currency.Unit
}

// New construye un Formatter. Locale o moneda inválidos caen en pt-BR / BRL.
func New(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		unit = currency.BRL
	}
	return &Formatter{tag: tag, unit: unit}
}

// Tag locale efectivo.
func (f *Formatter) Tag() language.Tag { return f.tag }

func (f *Formatter) printer() *message.Printer {
	return message.NewPrinter(f.tag)
}

// Currency devuelve el monto con símbolo y separadores del locale, ej. "R$ 1.234,56".
func (f *Formatter) Currency(v decimal.Decimal) string {
	p := f.printer()
	symbol := p.Sprint(currency.Symbol(f.unit))
	return symbol + " " + p.Sprint(number.Decimal(v.Round(2).InexactFloat64(), number.Scale(2)))
}

// Number devuelve el valor con la cantidad de decimales indicada.
func (f *Formatter) Number(v decimal.Decimal, places int) string {
	return f.printer().Sprint(number.Decimal(v.Round(int32(places)).InexactFloat64(), number.Scale(places)))
}

// Percent recibe una tasa ya expresada en porcentaje (1.25 = 1,25%).
func (f *Formatter) Percent(v decimal.Decimal) string {
	return f.Number(v, 2) + "%"
}

// Date formatea solo la parte de fecha.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout(f.tag))
}

func dateLayout(tag language.Tag) string {
	base, _ := tag.Base()
	region, _ := tag.Region()
	switch base.String() {
	case "pt", "es", "fr", "it":
		return "02/01/2006"
	case "de":
		return "02.01.2006"
	case "en":
		if strings.EqualFold(region.String(), "US") {
			return "01/02/2006"
		}
		return "02/01/2006"
	default:
		return "2006-01-02"
	}
}
