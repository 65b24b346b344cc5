package dto

import "github.com/shopspring/decimal"

// DashboardSummaryResponse totales de la cartera.
type DashboardSummaryResponse struct {
	Companies int `json:"companies"`

	Loans         LoanTotals       `json:"loans"`
	Consortiums   ConsortiumTotals `json:"consortiums"`
	Upcoming      []UpcomingItem   `json:"upcoming"`
	OverdueCount  int              `json:"overdue_count"`
	OverdueAmount MoneyValue       `json:"overdue_amount"`
}

// MoneyValue monto exacto y su versión formateada.
type MoneyValue struct {
	Value     decimal.Decimal `json:"value"`
	Formatted string          `json:"formatted"`
}

// LoanTotals totales de préstamos.
type LoanTotals struct {
	Active        int        `json:"active"`
	Finished      int        `json:"finished"`
	Principal     MoneyValue `json:"principal"`
	AmountPaid    MoneyValue `json:"amount_paid"`
	AmountToPay   MoneyValue `json:"amount_to_pay"`
	TotalInterest MoneyValue `json:"total_interest"`
}

// ConsortiumTotals totales de consorcios.
type ConsortiumTotals struct {
	Count              int        `json:"count"`
	CreditToReceive    MoneyValue `json:"credit_to_receive"`
	OutstandingBalance MoneyValue `json:"outstanding_balance"`
	AmountPaid         MoneyValue `json:"amount_paid"`
	AmountToPay        MoneyValue `json:"amount_to_pay"`
}

// UpcomingItem próxima cuota abierta.
type UpcomingItem struct {
	InstallmentID string     `json:"installment_id"`
	LoanID        string     `json:"loan_id"`
	Company       string     `json:"company"`
	Description   string     `json:"description"`
	Sequence      int        `json:"sequence"`
	DueDate       string     `json:"due_date"`
	DueDateLabel  string     `json:"due_date_label"`
	Status        string     `json:"status"`
	Value         MoneyValue `json:"value"`
}
