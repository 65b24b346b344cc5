package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// ConsortiumRequest alta o edición de consorcio.
type ConsortiumRequest struct {
	CompanyID     string `json:"company_id"`
	Observation   string `json:"observation"`
	Group         string `json:"group"`
	Quota         string `json:"quota"`
	Administrator string `json:"administrator"`
	Category      string `json:"category"`

	InstallmentValue   decimal.Decimal `json:"installment_value"`
	TotalInstallments  int             `json:"total_installments"`
	CreditToReceive    decimal.Decimal `json:"credit_to_receive"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
	AmountToPay        decimal.Decimal `json:"amount_to_pay"`
	InstallmentsToPay  int             `json:"installments_to_pay"`
	PaidInstallments   int             `json:"paid_installments"`
}

// ConsortiumResponse salida de consorcio.
type ConsortiumResponse struct {
	ID string `json:"id"`
	ConsortiumRequest
}

func (r ConsortiumRequest) ToEntity(id string) *entity.Consortium {
	return &entity.Consortium{
		ID:                 id,
		CompanyID:          r.CompanyID,
		Observation:        r.Observation,
		Group:              r.Group,
		Quota:              r.Quota,
		Administrator:      r.Administrator,
		Category:           r.Category,
		InstallmentValue:   r.InstallmentValue,
		TotalInstallments:  r.TotalInstallments,
		CreditToReceive:    r.CreditToReceive,
		OutstandingBalance: r.OutstandingBalance,
		AmountPaid:         r.AmountPaid,
		AmountToPay:        r.AmountToPay,
		InstallmentsToPay:  r.InstallmentsToPay,
		PaidInstallments:   r.PaidInstallments,
	}
}

func ConsortiumFromEntity(c *entity.Consortium) ConsortiumResponse {
	return ConsortiumResponse{
		ID: c.ID,
		ConsortiumRequest: ConsortiumRequest{
			CompanyID:          c.CompanyID,
			Observation:        c.Observation,
			Group:              c.Group,
			Quota:              c.Quota,
			Administrator:      c.Administrator,
			Category:           c.Category,
			InstallmentValue:   c.InstallmentValue,
			TotalInstallments:  c.TotalInstallments,
			CreditToReceive:    c.CreditToReceive,
			OutstandingBalance: c.OutstandingBalance,
			AmountPaid:         c.AmountPaid,
			AmountToPay:        c.AmountToPay,
			InstallmentsToPay:  c.InstallmentsToPay,
			PaidInstallments:   c.PaidInstallments,
		},
	}
}

func ConsortiumsFromEntities(list []*entity.Consortium) []ConsortiumResponse {
	out := make([]ConsortiumResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ConsortiumFromEntity(c))
	}
	return out
}
