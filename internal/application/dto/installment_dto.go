package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// InstallmentRequest alta o edición de cuota.
type InstallmentRequest struct {
	LoanID   string          `json:"loan_id"`
	Sequence int             `json:"sequence"`
	DueDate  string          `json:"due_date"`
	Value    decimal.Decimal `json:"value"`
	Interest decimal.Decimal `json:"interest"`
	Status   string          `json:"status"`
	PaidAt   string          `json:"paid_at,omitempty"`
}

// InstallmentResponse salida de cuota.
type InstallmentResponse struct {
	ID string `json:"id"`
	InstallmentRequest
}

func (r InstallmentRequest) ToEntity(id string) (*entity.Installment, error) {
	due, err := ParseDate("due_date", r.DueDate)
	if err != nil {
		return nil, err
	}
	paid, err := ParseDate("paid_at", r.PaidAt)
	if err != nil {
		return nil, err
	}
	inst := &entity.Installment{
		ID: id, LoanID: r.LoanID, Sequence: r.Sequence, DueDate: due,
		Value: r.Value, Interest: r.Interest, Status: r.Status,
	}
	if !paid.IsZero() {
		inst.PaidAt = &paid
	}
	return inst, nil
}

func InstallmentFromEntity(i *entity.Installment) InstallmentResponse {
	r := InstallmentResponse{
		ID: i.ID,
		InstallmentRequest: InstallmentRequest{
			LoanID: i.LoanID, Sequence: i.Sequence, DueDate: formatDate(i.DueDate),
			Value: i.Value, Interest: i.Interest, Status: i.Status,
		},
	}
	if i.PaidAt != nil {
		r.PaidAt = formatDate(*i.PaidAt)
	}
	return r
}

func InstallmentsFromEntities(list []*entity.Installment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(list))
	for _, i := range list {
		out = append(out, InstallmentFromEntity(i))
	}
	return out
}
