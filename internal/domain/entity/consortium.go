package entity

import "github.com/shopspring/decimal"

// Consortium cuota de consorcio (carta de crédito) de una Company.
type Consortium struct {
	ID            string
	CompanyID     string
	Observation   string // etiqueta libre
	Group         string
	Quota         string
	Administrator string
	Category      string // inmueble, vehículo, etc.

	InstallmentValue   decimal.Decimal
	TotalInstallments  int
	CreditToReceive    decimal.Decimal
	OutstandingBalance decimal.Decimal
	AmountPaid         decimal.Decimal
	AmountToPay        decimal.Decimal
	InstallmentsToPay  int
	PaidInstallments   int
}
