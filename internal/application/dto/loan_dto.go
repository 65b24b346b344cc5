package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// LoanRequest alta o edición de préstamo. Los montos aceptan número o texto.
type LoanRequest struct {
	CompanyID      string `json:"company_id"`
	Status         string `json:"status"`
	Description    string `json:"description"`
	Bank           string `json:"bank"`
	ContractNumber string `json:"contract_number"`

	Principal      decimal.Decimal `json:"principal"`
	FinancedAmount decimal.Decimal `json:"financed_amount"`
	UpfrontAmount  decimal.Decimal `json:"upfront_amount"`

	Installments           int             `json:"installments"`
	InstallmentValue       decimal.Decimal `json:"installment_value"`
	InterestPerInstallment decimal.Decimal `json:"interest_per_installment"`
	TotalInterest          decimal.Decimal `json:"total_interest"`

	MonthlyRate         decimal.Decimal `json:"monthly_rate"`
	NominalAnnualRate   decimal.Decimal `json:"nominal_annual_rate"`
	EffectiveAnnualRate decimal.Decimal `json:"effective_annual_rate"`

	PaidInstallments      int             `json:"paid_installments"`
	RemainingInstallments int             `json:"remaining_installments"`
	AmountPaid            decimal.Decimal `json:"amount_paid"`
	AmountToPay           decimal.Decimal `json:"amount_to_pay"`

	StartDate string `json:"start_date"` // AAAA-MM-DD
	AsOfDate  string `json:"as_of_date"`
}

// LoanResponse salida de préstamo.
type LoanResponse struct {
	ID string `json:"id"`
	LoanRequest
}

// ToEntity arma la entidad; id vacío significa alta.
func (r LoanRequest) ToEntity(id string) (*entity.Loan, error) {
	start, err := ParseDate("start_date", r.StartDate)
	if err != nil {
		return nil, err
	}
	asOf, err := ParseDate("as_of_date", r.AsOfDate)
	if err != nil {
		return nil, err
	}
	return &entity.Loan{
		ID:                     id,
		CompanyID:              r.CompanyID,
		Status:                 r.Status,
		Description:            r.Description,
		Bank:                   r.Bank,
		ContractNumber:         r.ContractNumber,
		Principal:              r.Principal,
		FinancedAmount:         r.FinancedAmount,
		UpfrontAmount:          r.UpfrontAmount,
		Installments:           r.Installments,
		InstallmentValue:       r.InstallmentValue,
		InterestPerInstallment: r.InterestPerInstallment,
		TotalInterest:          r.TotalInterest,
		MonthlyRate:            r.MonthlyRate,
		NominalAnnualRate:      r.NominalAnnualRate,
		EffectiveAnnualRate:    r.EffectiveAnnualRate,
		PaidInstallments:       r.PaidInstallments,
		RemainingInstallments:  r.RemainingInstallments,
		AmountPaid:             r.AmountPaid,
		AmountToPay:            r.AmountToPay,
		StartDate:              start,
		AsOfDate:               asOf,
	}, nil
}

func LoanFromEntity(l *entity.Loan) LoanResponse {
	return LoanResponse{
		ID: l.ID,
		LoanRequest: LoanRequest{
			CompanyID:              l.CompanyID,
			Status:                 l.Status,
			Description:            l.Description,
			Bank:                   l.Bank,
			ContractNumber:         l.ContractNumber,
			Principal:              l.Principal,
			FinancedAmount:         l.FinancedAmount,
			UpfrontAmount:          l.UpfrontAmount,
			Installments:           l.Installments,
			InstallmentValue:       l.InstallmentValue,
			InterestPerInstallment: l.InterestPerInstallment,
			TotalInterest:          l.TotalInterest,
			MonthlyRate:            l.MonthlyRate,
			NominalAnnualRate:      l.NominalAnnualRate,
			EffectiveAnnualRate:    l.EffectiveAnnualRate,
			PaidInstallments:       l.PaidInstallments,
			RemainingInstallments:  l.RemainingInstallments,
			AmountPaid:             l.AmountPaid,
			AmountToPay:            l.AmountToPay,
			StartDate:              formatDate(l.StartDate),
			AsOfDate:               formatDate(l.AsOfDate),
		},
	}
}

func LoansFromEntities(list []*entity.Loan) []LoanResponse {
	out := make([]LoanResponse, 0, len(list))
	for _, l := range list {
		out = append(out, LoanFromEntity(l))
	}
	return out
}
