package memory

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain/amortization"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// Dataset conjunto completo de colecciones.
type Dataset struct {
	Companies    []*entity.Company
	Loans        []*entity.Loan
	Installments []*entity.Installment
	Consortiums  []*entity.Consortium
	Users        []*entity.UserProfile
}

// IDs fijos del dataset de ejemplo (también usados por cmd/seed).
const (
	SampleCompanyAlfa = "6f1c2a9e-3b0d-4c56-9a41-0d6b5e7f1a01"
	SampleCompanyBeta = "6f1c2a9e-3b0d-4c56-9a41-0d6b5e7f1a02"
	SampleLoanCapital = "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f01"
	SampleLoanMaquina = "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f02"
	SampleLoanVeiculo = "b7d40c1e-8e2f-4f7a-a3c5-2e9b1d6c7f03"
)

type sampleLoan struct {
	id, companyID, description, bank, contract string
	principal, rate                            string
	installments, paid                         int
	start                                      time.Time
}

// SampleData devuelve un dataset nuevo en cada llamada; las cuotas se generan con
// el mismo cronograma que usa la aplicación.
func SampleData() Dataset {
	d := Dataset{
		Companies: []*entity.Company{
			{ID: SampleCompanyAlfa, Name: "Alfa Comércio de Alimentos Ltda", Nickname: "Alfa", TaxID: "12.345.678/0001-90", Address: "Av. Paulista, 1000 - São Paulo/SP"},
			{ID: SampleCompanyBeta, Name: "Beta Indústria Metalúrgica S.A.", Nickname: "Beta", TaxID: "98.765.432/0001-10", Address: "Rod. BR-116, km 20 - Curitiba/PR"},
		},
		Consortiums: []*entity.Consortium{
			{
				ID: "c3a1f5d2-7b64-4e0f-8d1a-5f2c9b3e4a01", CompanyID: SampleCompanyAlfa,
				Observation: "Galpão logístico", Group: "1045", Quota: "233", Administrator: "Porto Seguro Consórcios", Category: "imóvel",
				InstallmentValue: decimal.RequireFromString("3120.55"), TotalInstallments: 180,
				CreditToReceive: decimal.RequireFromString("450000"), OutstandingBalance: decimal.RequireFromString("405642.50"),
				AmountPaid: decimal.RequireFromString("112339.80"), AmountToPay: decimal.RequireFromString("449359.20"),
				InstallmentsToPay: 144, PaidInstallments: 36,
			},
			{
				ID: "c3a1f5d2-7b64-4e0f-8d1a-5f2c9b3e4a02", CompanyID: SampleCompanyBeta,
				Observation: "Caminhão frota", Group: "0782", Quota: "051", Administrator: "Rodobens", Category: "veículo",
				InstallmentValue: decimal.RequireFromString("4210.00"), TotalInstallments: 100,
				CreditToReceive: decimal.RequireFromString("380000"), OutstandingBalance: decimal.RequireFromString("252600.00"),
				AmountPaid: decimal.RequireFromString("168400.00"), AmountToPay: decimal.RequireFromString("252600.00"),
				InstallmentsToPay: 60, PaidInstallments: 40,
			},
		},
		Users: []*entity.UserProfile{
			{ID: "a9e7c3b1-2d4f-4a6b-8c0e-1f3a5b7c9d01", Name: "Mariana Costa", Email: "mariana@alfa.com.br", Role: entity.RoleMaster},
			{ID: "a9e7c3b1-2d4f-4a6b-8c0e-1f3a5b7c9d02", Name: "Rafael Souza", Email: "rafael@alfa.com.br", Role: entity.RoleManager},
			{ID: "a9e7c3b1-2d4f-4a6b-8c0e-1f3a5b7c9d03", Name: "Juliana Lima", Email: "juliana@beta.com.br", Role: entity.RoleFinance},
		},
	}

	loans := []sampleLoan{
		{SampleLoanCapital, SampleCompanyAlfa, "Capital de giro", "Banco do Brasil", "CG-2023-0481", "100000", "1.25", 24, 14, date(2023, 6, 15)},
		{SampleLoanMaquina, SampleCompanyBeta, "Financiamento de máquinas (FINAME)", "BNDES / Itaú", "FN-88213", "350000", "0.89", 48, 20, date(2022, 11, 10)},
		{SampleLoanVeiculo, SampleCompanyBeta, "Leasing veículo utilitário", "Santander", "LS-30917", "85000", "1.49", 12, 12, date(2022, 3, 5)},
	}
	for _, s := range loans {
		loan, installments := buildSampleLoan(s)
		d.Loans = append(d.Loans, loan)
		d.Installments = append(d.Installments, installments...)
	}
	return d
}

func buildSampleLoan(s sampleLoan) (*entity.Loan, []*entity.Installment) {
	in := amortization.Input{
		Principal:    decimal.RequireFromString(s.principal),
		Installments: s.installments,
		RatePercent:  decimal.RequireFromString(s.rate),
	}
	sim, _ := amortization.Simulate(in)
	rows, _ := amortization.Schedule(in, s.start)

	loan := &entity.Loan{
		ID: s.id, CompanyID: s.companyID, Status: entity.LoanActive,
		Description: s.description, Bank: s.bank, ContractNumber: s.contract,
		Principal: in.Principal, FinancedAmount: in.Principal, UpfrontAmount: decimal.Zero,
		Installments:           s.installments,
		InstallmentValue:       sim.InstallmentValue.Round(2),
		InterestPerInstallment: sim.InterestPerInstallment.Round(2),
		TotalInterest:          sim.TotalInterest.Round(2),
		MonthlyRate:            in.RatePercent,
		NominalAnnualRate:      amortization.NominalAnnualRate(in.RatePercent).Round(4),
		EffectiveAnnualRate:    amortization.EffectiveAnnualRate(in.RatePercent).Round(4),
		PaidInstallments:       s.paid,
		RemainingInstallments:  s.installments - s.paid,
		StartDate:              s.start,
		AsOfDate:               amortization.AddMonths(s.start, s.paid),
	}
	if s.paid == s.installments {
		loan.Status = entity.LoanFinished
	}

	installments := make([]*entity.Installment, 0, len(rows))
	for _, r := range rows {
		inst := &entity.Installment{
			ID:       sampleInstallmentID(s.id, r.Sequence),
			LoanID:   s.id,
			Sequence: r.Sequence,
			DueDate:  r.DueDate,
			Value:    r.Value,
			Interest: r.Interest,
			Status:   entity.InstallmentPending,
		}
		if r.Sequence <= s.paid {
			paidAt := r.DueDate
			inst.Status = entity.InstallmentPaid
			inst.PaidAt = &paidAt
			loan.AmountPaid = loan.AmountPaid.Add(r.Value)
		} else {
			loan.AmountToPay = loan.AmountToPay.Add(r.Value)
		}
		installments = append(installments, inst)
	}
	return loan, installments
}

// sampleInstallmentID deriva un UUID estable (v5) a partir del préstamo y la secuencia.
func sampleInstallmentID(loanID string, seq int) string {
	return uuid.NewSHA1(uuid.MustParse(loanID), []byte(strconv.Itoa(seq))).String()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
