package dto

import "github.com/shopspring/decimal"

// SimulationRequest entrada del simulador. Rate en % por período (1.25 = 1,25%).
type SimulationRequest struct {
	Principal       decimal.Decimal `json:"principal"`
	Installments    int             `json:"installments"`
	Rate            decimal.Decimal `json:"rate"`
	StartDate       string          `json:"start_date,omitempty"`
	IncludeSchedule bool            `json:"include_schedule"`
}

// SimulationResponse resultado sin redondear más los mismos valores ya formateados.
type SimulationResponse struct {
	InstallmentValue       decimal.Decimal       `json:"installment_value"`
	TotalAmount            decimal.Decimal       `json:"total_amount"`
	TotalInterest          decimal.Decimal       `json:"total_interest"`
	InterestPerInstallment decimal.Decimal       `json:"interest_per_installment"`
	EffectiveAnnualRate    decimal.Decimal       `json:"effective_annual_rate"`
	Formatted              SimulationFormatted   `json:"formatted"`
	Schedule               []ScheduleRowResponse `json:"schedule,omitempty"`
	Cached                 bool                  `json:"cached"`
}

// SimulationFormatted valores listos para mostrar en el locale configurado.
type SimulationFormatted struct {
	InstallmentValue       string `json:"installment_value"`
	TotalAmount            string `json:"total_amount"`
	TotalInterest          string `json:"total_interest"`
	InterestPerInstallment string `json:"interest_per_installment"`
	EffectiveAnnualRate    string `json:"effective_annual_rate"`
}

// ScheduleRowResponse fila del cronograma.
type ScheduleRowResponse struct {
	Sequence     int             `json:"sequence"`
	DueDate      string          `json:"due_date"`
	Value        decimal.Decimal `json:"value"`
	Interest     decimal.Decimal `json:"interest"`
	Amortization decimal.Decimal `json:"amortization"`
	Balance      decimal.Decimal `json:"balance"`
}
