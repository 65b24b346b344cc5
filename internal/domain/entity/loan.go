package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Loan.
const (
	LoanActive   = "active"
	LoanFinished = "finished"
)

// Loan préstamo contratado por una Company. Sus cuotas (Installment) le pertenecen.
type Loan struct {
	ID             string
	CompanyID      string
	Status         string // active, finished
	Description    string
	Bank           string
	ContractNumber string

	Principal      decimal.Decimal // valor contratado
	FinancedAmount decimal.Decimal
	UpfrontAmount  decimal.Decimal // entrada / IOF pagado al inicio

	Installments           int
	InstallmentValue       decimal.Decimal
	InterestPerInstallment decimal.Decimal
	TotalInterest          decimal.Decimal

	MonthlyRate         decimal.Decimal // % por período
	NominalAnnualRate   decimal.Decimal // % a.a.
	EffectiveAnnualRate decimal.Decimal // % a.a.

	PaidInstallments      int
	RemainingInstallments int
	AmountPaid            decimal.Decimal
	AmountToPay           decimal.Decimal

	StartDate time.Time
	AsOfDate  time.Time // fecha de posición de los saldos
}

// Consistent informa si paid + remaining == installments. No se exige al guardar.
func (l *Loan) Consistent() bool {
	return l.PaidInstallments+l.RemainingInstallments == l.Installments
}

// FinancedOrPrincipal base de cálculo para el cronograma.
func (l *Loan) FinancedOrPrincipal() decimal.Decimal {
	if l.FinancedAmount.IsPositive() {
		return l.FinancedAmount
	}
	return l.Principal
}
