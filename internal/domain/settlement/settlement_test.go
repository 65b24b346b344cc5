package settlement_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/settlement"
)

func TestSettleLoan(t *testing.T) {
	in := entity.Loan{
		ID: "l1", Status: entity.LoanActive, Installments: 24,
		PaidInstallments: 10, RemainingInstallments: 14,
		AmountPaid: decimal.NewFromInt(1000), AmountToPay: decimal.NewFromInt(1500),
	}
	out := settlement.SettleLoan(in)

	assert.Equal(t, entity.LoanFinished, out.Status)
	assert.Equal(t, 24, out.PaidInstallments)
	assert.Equal(t, 0, out.RemainingInstallments)
	assert.True(t, out.AmountPaid.Equal(decimal.NewFromInt(2500)))
	assert.True(t, out.AmountToPay.IsZero())
	assert.True(t, out.Consistent())

	assert.Equal(t, entity.LoanActive, in.Status, "la entrada no se modifica")
}

func TestSettleConsortium(t *testing.T) {
	in := entity.Consortium{
		TotalInstallments: 80, PaidInstallments: 30, InstallmentsToPay: 50,
		AmountToPay: decimal.NewFromInt(5000), OutstandingBalance: decimal.NewFromInt(4800),
		AmountPaid: decimal.NewFromInt(3000),
	}
	out := settlement.SettleConsortium(in)

	assert.Equal(t, 0, out.InstallmentsToPay)
	assert.Equal(t, 80, out.PaidInstallments)
	assert.True(t, out.AmountToPay.IsZero())
	assert.True(t, out.OutstandingBalance.IsZero())
	assert.True(t, out.AmountPaid.Equal(decimal.NewFromInt(3000)), "el monto pagado no cambia")
}

func TestSettleInstallment(t *testing.T) {
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := settlement.SettleInstallment(entity.Installment{Status: entity.InstallmentOverdue}, at)
	assert.Equal(t, entity.InstallmentPaid, out.Status)
	if assert.NotNil(t, out.PaidAt) {
		assert.Equal(t, at, *out.PaidAt)
	}
}
