package amortization

import (
	"time"

	"github.com/shopspring/decimal"
)

// Row una línea del cronograma. Los montos se redondean a centavos porque se
// persisten como cuotas; la última fila absorbe la diferencia de redondeo para
// que el saldo termine exactamente en cero.
type Row struct {
	Sequence     int
	DueDate      time.Time
	Value        decimal.Decimal
	Interest     decimal.Decimal
	Amortization decimal.Decimal
	Balance      decimal.Decimal
}

// Schedule genera la tabla Price. La primera cuota vence un mes después de start.
func Schedule(in Input, start time.Time) ([]Row, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	i := in.RatePercent.DivRound(hundred, precision)
	pmt, _ := installmentValue(in)
	pmt = pmt.Round(2)
	balance := in.Principal

	rows := make([]Row, 0, in.Installments)
	for seq := 1; seq <= in.Installments; seq++ {
		interest := balance.Mul(i).Round(2)
		amort := pmt.Sub(interest)
		if seq == in.Installments || amort.GreaterThan(balance) {
			amort = balance
		}
		balance = balance.Sub(amort)
		rows = append(rows, Row{
			Sequence:     seq,
			DueDate:      AddMonths(start, seq),
			Value:        amort.Add(interest),
			Interest:     interest,
			Amortization: amort,
			Balance:      balance,
		})
	}
	return rows, nil
}

// AddMonths suma meses conservando el día, limitado al último día del mes destino
// (31/01 + 1 mes = 28/02 o 29/02).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}
