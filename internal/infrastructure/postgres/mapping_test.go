package postgres

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMapping_LoanIdaYVuelta(t *testing.T) {
	loan := &entity.Loan{
		ID: "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f01", CompanyID: "6f1c2a9e-3b0d-4c56-9a41-0d6b5e7f1a01",
		Status: entity.LoanActive, Description: "Capital de giro", Bank: "Itaú", ContractNumber: "CG-1",
		Principal: dec("100000"), FinancedAmount: dec("95000"), UpfrontAmount: dec("5000"),
		Installments: 24, InstallmentValue: dec("4848.66"), InterestPerInstallment: dec("682"),
		TotalInterest: dec("16367.96"), MonthlyRate: dec("1.25"), NominalAnnualRate: dec("15"),
		EffectiveAnnualRate: dec("16.0755"), PaidInstallments: 3, RemainingInstallments: 21,
		AmountPaid: dec("14545.98"), AmountToPay: dec("101821.98"),
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		AsOfDate:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
	}
	got := loansTable.decode(loansTable.encode(loan))
	assert.Equal(t, loan, got)
}

func TestMapping_InstallmentPaidAtOpcional(t *testing.T) {
	due := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	pending := &entity.Installment{ID: "x", LoanID: "y", Sequence: 1, DueDate: due, Value: dec("10"), Interest: dec("1"), Status: entity.InstallmentPending}

	row := installmentsTable.encode(pending)
	assert.Nil(t, row["paid_at"])
	assert.Equal(t, pending, installmentsTable.decode(row))

	paid := *pending
	paid.PaidAt = &due
	paid.Status = entity.InstallmentPaid
	assert.Equal(t, &paid, installmentsTable.decode(installmentsTable.encode(&paid)))
}

func TestMapping_ColumnasSnakeCase(t *testing.T) {
	row := consortiumsTable.encode(&entity.Consortium{Group: "1045", TotalInstallments: 180})
	assert.Equal(t, "1045", row["group_code"])
	assert.Equal(t, 180, row["total_installments"])
	for name := range row {
		assert.Equal(t, strings.ToLower(name), name)
	}
}

func TestMapping_TextoNumericoSeConvierte(t *testing.T) {
	row := map[string]any{
		"id":                  "c1",
		"installment_value":   "3120.55",
		"total_installments":  "180",
		"credit_to_receive":   "abc",
		"paid_installments":   "36.0",
		"outstanding_balance": nil,
	}
	c := consortiumsTable.decode(row)
	assert.True(t, c.InstallmentValue.Equal(dec("3120.55")))
	assert.Equal(t, 180, c.TotalInstallments)
	assert.True(t, c.CreditToReceive.IsZero(), "no numérico vale cero")
	assert.Equal(t, 36, c.PaidInstallments)
	assert.True(t, c.OutstandingBalance.IsZero(), "ausente vale cero")
	assert.Equal(t, 0, c.InstallmentsToPay)
}

func TestToDecimal(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{dec("1.5"), "1.5"},
		{" 2.25 ", "2.25"},
		{[]byte("7"), "7"},
		{float64(0.5), "0.5"},
		{int32(4), "4"},
		{int64(9), "9"},
		{pgtype.Numeric{Int: big.NewInt(12345), Exp: -2, Valid: true}, "123.45"},
		{pgtype.Numeric{Valid: false}, "0"},
		{"", "0"},
		{true, "0"},
	}
	for _, c := range cases {
		assert.True(t, toDecimal(c.in).Equal(dec(c.want)), "%#v -> %s", c.in, toDecimal(c.in))
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, toTime("2024-03-05"))
	assert.Equal(t, want, toTime("2024-03-05T00:00:00Z"))
	assert.Equal(t, want, toTime(pgtype.Date{Time: want, Valid: true}))
	assert.True(t, toTime("ayer").IsZero())
	assert.True(t, toTime(nil).IsZero())
}

func TestToString_UUIDBinario(t *testing.T) {
	raw := [16]byte{0x6f, 0x1c, 0x2a, 0x9e, 0x3b, 0x0d, 0x4c, 0x56, 0x9a, 0x41, 0x0d, 0x6b, 0x5e, 0x7f, 0x1a, 0x01}
	assert.Equal(t, "6f1c2a9e-3b0d-4c56-9a41-0d6b5e7f1a01", toString(raw))
	assert.Equal(t, "", toString(nil))
}

func TestUpsertSQL_SinIDDejaQueLaBaseLoGenere(t *testing.T) {
	q, args := companiesTable.upsertSQL(&entity.Company{Name: "Nova"})
	require.Len(t, args, 4)
	assert.Contains(t, q, "INSERT INTO companies (name, nickname, tax_id, address)")
	assert.Contains(t, q, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name")
	assert.Contains(t, q, "RETURNING id::text AS id, name")
}

func TestUpsertSQL_ConIDActualiza(t *testing.T) {
	q, args := loansTable.upsertSQL(&entity.Loan{ID: "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f01", CompanyID: "c", Installments: 12})
	assert.True(t, strings.HasPrefix(q, "INSERT INTO loans (id, company_id, status"))
	assert.Equal(t, "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f01", args[0])
	assert.NotContains(t, q, "id = EXCLUDED.id")
	assert.Len(t, args, len(loansTable.columns))
}

func TestListSQL_Orden(t *testing.T) {
	assert.True(t, strings.HasSuffix(loansTable.listSQL(), "ORDER BY start_date DESC NULLS LAST, id"))
	assert.True(t, strings.HasSuffix(installmentsTable.listSQL(), "ORDER BY loan_id, sequence"))
}
