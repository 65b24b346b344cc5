package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Installment.
const (
	InstallmentPaid    = "paid"
	InstallmentPending = "pending"
	InstallmentOverdue = "overdue"
)

// Installment cuota de un préstamo. Sequence empieza en 1 y es única dentro del préstamo.
type Installment struct {
	ID       string
	LoanID   string
	Sequence int
	DueDate  time.Time
	Value    decimal.Decimal
	Interest decimal.Decimal // porción de interés incluida en Value
	Status   string          // paid, pending, overdue
	PaidAt   *time.Time
}

// Open informa si la cuota aún debe pagarse.
func (i *Installment) Open() bool {
	return i.Status == InstallmentPending || i.Status == InstallmentOverdue
}
