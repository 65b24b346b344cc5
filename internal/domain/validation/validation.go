// Package validation normaliza y valida registros antes de que lleguen al
// almacenamiento. Los textos libres se limpian de HTML con una política estricta.
package validation

import (
	"html"
	"net/mail"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/amortization"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

var strictPolicy = bluemonday.StrictPolicy()

// Text quita etiquetas HTML y espacios en los extremos. Las entidades que la
// política escapa (&amp;) se devuelven a texto plano.
func Text(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

func nonNegative(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return domain.Invalid(field, "no puede ser negativo")
	}
	return nil
}

func nonNegativeInt(field string, v int) error {
	if v < 0 {
		return domain.Invalid(field, "no puede ser negativo")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Company exige razón social.
func Company(c *entity.Company) error {
	c.Name = Text(c.Name)
	c.Nickname = Text(c.Nickname)
	c.TaxID = Text(c.TaxID)
	c.Address = Text(c.Address)
	if c.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	return nil
}

// Loan exige empresa, estado válido (active por defecto) y entre 1 y
// amortization.MaxInstallments cuotas.
func Loan(l *entity.Loan) error {
	l.Description = Text(l.Description)
	l.Bank = Text(l.Bank)
	l.ContractNumber = Text(l.ContractNumber)
	if l.Status == "" {
		l.Status = entity.LoanActive
	}
	if l.CompanyID == "" {
		return domain.Invalid("company_id", "es requerido")
	}
	if l.Status != entity.LoanActive && l.Status != entity.LoanFinished {
		return domain.Invalid("status", "debe ser active o finished")
	}
	if l.Installments < 1 {
		return domain.Invalid("installments", "debe ser al menos 1")
	}
	if l.Installments > amortization.MaxInstallments {
		return domain.Invalid("installments", "no puede superar %d", amortization.MaxInstallments)
	}
	return firstError(
		nonNegative("principal", l.Principal),
		nonNegative("financed_amount", l.FinancedAmount),
		nonNegative("upfront_amount", l.UpfrontAmount),
		nonNegative("installment_value", l.InstallmentValue),
		nonNegative("monthly_rate", l.MonthlyRate),
		nonNegative("amount_paid", l.AmountPaid),
		nonNegative("amount_to_pay", l.AmountToPay),
		nonNegativeInt("paid_installments", l.PaidInstallments),
		nonNegativeInt("remaining_installments", l.RemainingInstallments),
	)
}

// Installment exige préstamo, secuencia ≥ 1 y fecha de vencimiento.
func Installment(i *entity.Installment) error {
	if i.Status == "" {
		i.Status = entity.InstallmentPending
	}
	if i.LoanID == "" {
		return domain.Invalid("loan_id", "es requerido")
	}
	if i.Sequence < 1 {
		return domain.Invalid("sequence", "debe ser al menos 1")
	}
	if i.DueDate.IsZero() {
		return domain.Invalid("due_date", "es requerida")
	}
	switch i.Status {
	case entity.InstallmentPaid, entity.InstallmentPending, entity.InstallmentOverdue:
	default:
		return domain.Invalid("status", "debe ser paid, pending u overdue")
	}
	return firstError(
		nonNegative("value", i.Value),
		nonNegative("interest", i.Interest),
	)
}

// Consortium exige empresa y valores no negativos.
func Consortium(c *entity.Consortium) error {
	c.Observation = Text(c.Observation)
	c.Group = Text(c.Group)
	c.Quota = Text(c.Quota)
	c.Administrator = Text(c.Administrator)
	c.Category = Text(c.Category)
	if c.CompanyID == "" {
		return domain.Invalid("company_id", "es requerido")
	}
	return firstError(
		nonNegative("installment_value", c.InstallmentValue),
		nonNegative("credit_to_receive", c.CreditToReceive),
		nonNegative("outstanding_balance", c.OutstandingBalance),
		nonNegative("amount_paid", c.AmountPaid),
		nonNegative("amount_to_pay", c.AmountToPay),
		nonNegativeInt("total_installments", c.TotalInstallments),
		nonNegativeInt("installments_to_pay", c.InstallmentsToPay),
		nonNegativeInt("paid_installments", c.PaidInstallments),
	)
}

// UserProfile exige nombre, e-mail válido y rol conocido.
func UserProfile(u *entity.UserProfile) error {
	u.Name = Text(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Name == "" {
		return domain.Invalid("name", "es requerido")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil || u.Email == "" {
		return domain.Invalid("email", "formato inválido")
	}
	if !entity.ValidRole(u.Role) {
		return domain.Invalid("role", "debe ser master, manager o finance")
	}
	return nil
}
