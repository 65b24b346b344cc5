// Package amortization implementa el cálculo de préstamos con cuota fija
// (sistema francés / tabla Price).
//
//	i     = r / 100
//	cuota = P · i / (1 − (1+i)^−n)   (equivalente a P · i · f / (f − 1), f = (1+i)^n)
//	total = cuota · n
//	juros = total − P
//
// Los valores internos conservan 20 decimales; el redondeo a centavos es tarea
// de la capa de presentación.
package amortization

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain"
)

const precision int32 = 20

// MaxInstallments plazo máximo admitido (100 años de cuotas mensuales).
const MaxInstallments = 1200

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Input parámetros de una simulación. RatePercent es la tasa por período en
// porcentaje (1.25 = 1,25% por período).
type Input struct {
	Principal    decimal.Decimal
	Installments int
	RatePercent  decimal.Decimal
}

// Result resultado sin redondear.
type Result struct {
	InstallmentValue       decimal.Decimal
	TotalAmount            decimal.Decimal
	TotalInterest          decimal.Decimal
	InterestPerInstallment decimal.Decimal
}

// Validate exige P > 0, 1 ≤ n ≤ MaxInstallments y r ≥ 0.
func (in Input) Validate() error {
	if !in.Principal.IsPositive() {
		return domain.Invalid("principal", "debe ser mayor que cero")
	}
	if in.Installments < 1 {
		return domain.Invalid("installments", "debe ser al menos 1")
	}
	if in.Installments > MaxInstallments {
		return domain.Invalid("installments", "no puede superar %d", MaxInstallments)
	}
	if in.RatePercent.IsNegative() {
		return domain.Invalid("rate", "no puede ser negativa")
	}
	return nil
}

// Simulate calcula cuota, total e intereses. Con tasa cero la cuota es P/n.
func Simulate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	n := decimal.NewFromInt(int64(in.Installments))
	pmt, flat := installmentValue(in)

	if flat {
		return Result{
			InstallmentValue:       pmt,
			TotalAmount:            in.Principal,
			TotalInterest:          decimal.Zero,
			InterestPerInstallment: decimal.Zero,
		}, nil
	}

	total := pmt.Mul(n)
	interest := total.Sub(in.Principal)
	return Result{
		InstallmentValue:       pmt,
		TotalAmount:            total,
		TotalInterest:          interest,
		InterestPerInstallment: interest.DivRound(n, precision),
	}, nil
}

// installmentValue devuelve la cuota y si se calculó sin intereses. Con una tasa
// tan chica que (1+i)^n no se distingue de 1 a 20 decimales la cuota es P/n,
// igual que con tasa cero.
func installmentValue(in Input) (decimal.Decimal, bool) {
	n := decimal.NewFromInt(int64(in.Installments))
	i := in.RatePercent.DivRound(hundred, precision)
	f := pow(one.Add(i), in.Installments)
	growth := f.Sub(one)
	if i.IsZero() || growth.IsZero() {
		return in.Principal.DivRound(n, precision), true
	}
	return in.Principal.Mul(i).Mul(f).DivRound(growth, precision), false
}

// pow eleva base a un exponente entero positivo manteniendo la precisión acotada.
func pow(base decimal.Decimal, exp int) decimal.Decimal {
	result := one
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(precision)
		}
		base = base.Mul(base).Round(precision)
		exp >>= 1
	}
	return result
}

// EffectiveAnnualRate convierte una tasa mensual (%) en tasa efectiva anual (%):
// ((1+i)^12 − 1) · 100.
func EffectiveAnnualRate(monthlyPercent decimal.Decimal) decimal.Decimal {
	i := monthlyPercent.DivRound(hundred, precision)
	return pow(one.Add(i), 12).Sub(one).Mul(hundred)
}

// NominalAnnualRate tasa nominal anual (%) = 12 · tasa mensual.
func NominalAnnualRate(monthlyPercent decimal.Decimal) decimal.Decimal {
	return monthlyPercent.Mul(twelve)
}
