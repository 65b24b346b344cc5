package postgres

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

var companiesTable = &table[entity.Company]{
	name:    "companies",
	orderBy: "name, id",
	columns: []column[entity.Company]{
		idCol(func(c *entity.Company) *string { return &c.ID }),
		textCol("name", func(c *entity.Company) *string { return &c.Name }),
		textCol("nickname", func(c *entity.Company) *string { return &c.Nickname }),
		textCol("tax_id", func(c *entity.Company) *string { return &c.TaxID }),
		textCol("address", func(c *entity.Company) *string { return &c.Address }),
		createdAtCol(func(c *entity.Company) *time.Time { return &c.CreatedAt }),
	},
}

var loansTable = &table[entity.Loan]{
	name:    "loans",
	orderBy: "start_date DESC NULLS LAST, id",
	columns: []column[entity.Loan]{
		idCol(func(l *entity.Loan) *string { return &l.ID }),
		uuidCol("company_id", func(l *entity.Loan) *string { return &l.CompanyID }),
		textCol("status", func(l *entity.Loan) *string { return &l.Status }),
		textCol("description", func(l *entity.Loan) *string { return &l.Description }),
		textCol("bank", func(l *entity.Loan) *string { return &l.Bank }),
		textCol("contract_number", func(l *entity.Loan) *string { return &l.ContractNumber }),
		decimalCol("principal", func(l *entity.Loan) *decimal.Decimal { return &l.Principal }),
		decimalCol("financed_amount", func(l *entity.Loan) *decimal.Decimal { return &l.FinancedAmount }),
		decimalCol("upfront_amount", func(l *entity.Loan) *decimal.Decimal { return &l.UpfrontAmount }),
		intCol("installments", func(l *entity.Loan) *int { return &l.Installments }),
		decimalCol("installment_value", func(l *entity.Loan) *decimal.Decimal { return &l.InstallmentValue }),
		decimalCol("interest_per_installment", func(l *entity.Loan) *decimal.Decimal { return &l.InterestPerInstallment }),
		decimalCol("total_interest", func(l *entity.Loan) *decimal.Decimal { return &l.TotalInterest }),
		decimalCol("monthly_rate", func(l *entity.Loan) *decimal.Decimal { return &l.MonthlyRate }),
		decimalCol("nominal_annual_rate", func(l *entity.Loan) *decimal.Decimal { return &l.NominalAnnualRate }),
		decimalCol("effective_annual_rate", func(l *entity.Loan) *decimal.Decimal { return &l.EffectiveAnnualRate }),
		intCol("paid_installments", func(l *entity.Loan) *int { return &l.PaidInstallments }),
		intCol("remaining_installments", func(l *entity.Loan) *int { return &l.RemainingInstallments }),
		decimalCol("amount_paid", func(l *entity.Loan) *decimal.Decimal { return &l.AmountPaid }),
		decimalCol("amount_to_pay", func(l *entity.Loan) *decimal.Decimal { return &l.AmountToPay }),
		dateCol("start_date", func(l *entity.Loan) *time.Time { return &l.StartDate }),
		dateCol("as_of_date", func(l *entity.Loan) *time.Time { return &l.AsOfDate }),
	},
}

var installmentsTable = &table[entity.Installment]{
	name:    "installments",
	orderBy: "loan_id, sequence",
	columns: []column[entity.Installment]{
		idCol(func(i *entity.Installment) *string { return &i.ID }),
		uuidCol("loan_id", func(i *entity.Installment) *string { return &i.LoanID }),
		intCol("sequence", func(i *entity.Installment) *int { return &i.Sequence }),
		dateCol("due_date", func(i *entity.Installment) *time.Time { return &i.DueDate }),
		decimalCol("value", func(i *entity.Installment) *decimal.Decimal { return &i.Value }),
		decimalCol("interest", func(i *entity.Installment) *decimal.Decimal { return &i.Interest }),
		textCol("status", func(i *entity.Installment) *string { return &i.Status }),
		optionalDateCol("paid_at", func(i *entity.Installment) **time.Time { return &i.PaidAt }),
	},
}

var consortiumsTable = &table[entity.Consortium]{
	name:    "consortiums",
	orderBy: "observation, group_code, quota, id",
	columns: []column[entity.Consortium]{
		idCol(func(c *entity.Consortium) *string { return &c.ID }),
		uuidCol("company_id", func(c *entity.Consortium) *string { return &c.CompanyID }),
		textCol("observation", func(c *entity.Consortium) *string { return &c.Observation }),
		textCol("group_code", func(c *entity.Consortium) *string { return &c.Group }),
		textCol("quota", func(c *entity.Consortium) *string { return &c.Quota }),
		textCol("administrator", func(c *entity.Consortium) *string { return &c.Administrator }),
		textCol("category", func(c *entity.Consortium) *string { return &c.Category }),
		decimalCol("installment_value", func(c *entity.Consortium) *decimal.Decimal { return &c.InstallmentValue }),
		intCol("total_installments", func(c *entity.Consortium) *int { return &c.TotalInstallments }),
		decimalCol("credit_to_receive", func(c *entity.Consortium) *decimal.Decimal { return &c.CreditToReceive }),
		decimalCol("outstanding_balance", func(c *entity.Consortium) *decimal.Decimal { return &c.OutstandingBalance }),
		decimalCol("amount_paid", func(c *entity.Consortium) *decimal.Decimal { return &c.AmountPaid }),
		decimalCol("amount_to_pay", func(c *entity.Consortium) *decimal.Decimal { return &c.AmountToPay }),
		intCol("installments_to_pay", func(c *entity.Consortium) *int { return &c.InstallmentsToPay }),
		intCol("paid_installments", func(c *entity.Consortium) *int { return &c.PaidInstallments }),
	},
}

var usersTable = &table[entity.UserProfile]{
	name:    "user_profiles",
	orderBy: "name, id",
	columns: []column[entity.UserProfile]{
		idCol(func(u *entity.UserProfile) *string { return &u.ID }),
		uuidCol("auth_user_id", func(u *entity.UserProfile) *string { return &u.AuthUserID }),
		textCol("name", func(u *entity.UserProfile) *string { return &u.Name }),
		textCol("email", func(u *entity.UserProfile) *string { return &u.Email }),
		textCol("role", func(u *entity.UserProfile) *string { return &u.Role }),
	},
}
