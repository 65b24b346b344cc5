package validation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/validation"
)

func TestCompany_LimpiaHTMLYExigeNombre(t *testing.T) {
	c := &entity.Company{Name: "  <b>Acme</b> Ltda ", Nickname: "<script>x</script>Acme"}
	require.NoError(t, validation.Company(c))
	assert.Equal(t, "Acme Ltda", c.Name)
	assert.Equal(t, "Acme", c.Nickname)

	amp := &entity.Company{Name: "Silva & Filhos"}
	require.NoError(t, validation.Company(amp))
	assert.Equal(t, "Silva & Filhos", amp.Name)

	err := validation.Company(&entity.Company{Name: "<i></i>"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoan(t *testing.T) {
	l := &entity.Loan{CompanyID: "c1", Installments: 12, Principal: decimal.NewFromInt(1000)}
	require.NoError(t, validation.Loan(l))
	assert.Equal(t, entity.LoanActive, l.Status, "estado por defecto")

	cases := map[string]entity.Loan{
		"sin empresa":       {Installments: 12},
		"estado inválido":   {CompanyID: "c1", Installments: 12, Status: "closed"},
		"sin cuotas":        {CompanyID: "c1"},
		"monto negativo":    {CompanyID: "c1", Installments: 1, AmountPaid: decimal.NewFromInt(-1)},
		"contador negativo": {CompanyID: "c1", Installments: 1, PaidInstallments: -1},
		"plazo excesivo":    {CompanyID: "c1", Installments: 2_000_000_000},
	}
	for name, loan := range cases {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, validation.Loan(&loan), domain.ErrInvalidInput)
		})
	}
}

func TestInstallment(t *testing.T) {
	i := &entity.Installment{LoanID: "l1", Sequence: 1, DueDate: time.Now()}
	require.NoError(t, validation.Installment(i))
	assert.Equal(t, entity.InstallmentPending, i.Status)

	assert.Error(t, validation.Installment(&entity.Installment{LoanID: "l1", Sequence: 0, DueDate: time.Now()}))
	assert.Error(t, validation.Installment(&entity.Installment{LoanID: "l1", Sequence: 1}))
	assert.Error(t, validation.Installment(&entity.Installment{LoanID: "l1", Sequence: 1, DueDate: time.Now(), Status: "late"}))
}

func TestUserProfile(t *testing.T) {
	u := &entity.UserProfile{Name: "Ana", Email: " ANA@Example.com ", Role: entity.RoleFinance}
	require.NoError(t, validation.UserProfile(u))
	assert.Equal(t, "ana@example.com", u.Email)

	assert.Error(t, validation.UserProfile(&entity.UserProfile{Name: "Ana", Email: "no-es-email", Role: entity.RoleFinance}))
	assert.Error(t, validation.UserProfile(&entity.UserProfile{Name: "Ana", Email: "a@b.com", Role: "admin"}))
}

func TestConsortium(t *testing.T) {
	assert.Error(t, validation.Consortium(&entity.Consortium{}))
	assert.NoError(t, validation.Consortium(&entity.Consortium{CompanyID: "c1", Group: "<p>G1</p>"}))
}
