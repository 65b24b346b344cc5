// Package settlement contiene la quitación de préstamos y consorcios como
// transformaciones puras; el guardado lo hace el store con el contrato normal.
package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// SettleLoan marca el préstamo como finalizado y traslada el saldo a pagar al pagado.
func SettleLoan(l entity.Loan) entity.Loan {
	l.Status = entity.LoanFinished
	l.PaidInstallments = l.Installments
	l.RemainingInstallments = 0
	l.AmountPaid = l.AmountPaid.Add(l.AmountToPay)
	l.AmountToPay = decimal.Zero
	return l
}

// SettleConsortium deja el consorcio sin saldo ni cuotas por pagar.
func SettleConsortium(c entity.Consortium) entity.Consortium {
	c.InstallmentsToPay = 0
	c.AmountToPay = decimal.Zero
	c.OutstandingBalance = decimal.Zero
	c.PaidInstallments = c.TotalInstallments
	return c
}

// SettleInstallment marca una cuota abierta como pagada en la fecha indicada.
func SettleInstallment(i entity.Installment, at time.Time) entity.Installment {
	i.Status = entity.InstallmentPaid
	paid := at
	i.PaidAt = &paid
	return i
}
