package usecase

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/pkg/format"
)

const defaultUpcomingLimit = 5 // cuotas en el widget de próximos vencimientos

// PortfolioReader lecturas de cartera que necesita el dashboard. *store.Store la cumple.
type PortfolioReader interface {
	Companies() []*entity.Company
	Loans(f store.LoanFilter) []*entity.Loan
	Installments(f store.InstallmentFilter) []*entity.Installment
	Consortiums(companyID string) []*entity.Consortium
}

// DashboardUseCase totales de la cartera para la pantalla principal.
type DashboardUseCase struct {
	data PortfolioReader
	fmt  *format.Formatter
}

func NewDashboardUseCase(data PortfolioReader, f *format.Formatter) *DashboardUseCase {
	return &DashboardUseCase{data: data, fmt: f}
}

// Summary agrega préstamos, consorcios y cuotas abiertas. companyID vacío = toda
// la cartera. Una cuota abierta con vencimiento anterior a now cuenta como vencida
// aunque el barrido todavía no haya cambiado su estado.
func (uc *DashboardUseCase) Summary(_ context.Context, companyID string, now time.Time, limit int) (*dto.DashboardSummaryResponse, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	today := truncateDay(now)

	companies := uc.data.Companies()
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.DisplayName()
	}

	out := &dto.DashboardSummaryResponse{Companies: len(companies)}
	if companyID != "" {
		out.Companies = 0
		if _, ok := names[companyID]; ok {
			out.Companies = 1
		}
	}

	loans := uc.data.Loans(store.LoanFilter{CompanyID: companyID})
	byID := make(map[string]*entity.Loan, len(loans))
	var principal, paid, toPay, interest decimal.Decimal
	for _, l := range loans {
		byID[l.ID] = l
		if l.Status == entity.LoanFinished {
			out.Loans.Finished++
		} else {
			out.Loans.Active++
		}
		principal = principal.Add(l.Principal)
		paid = paid.Add(l.AmountPaid)
		toPay = toPay.Add(l.AmountToPay)
		interest = interest.Add(l.TotalInterest)
	}
	out.Loans.Principal = uc.money(principal)
	out.Loans.AmountPaid = uc.money(paid)
	out.Loans.AmountToPay = uc.money(toPay)
	out.Loans.TotalInterest = uc.money(interest)

	var credit, balance, cPaid, cToPay decimal.Decimal
	consortiums := uc.data.Consortiums(companyID)
	for _, c := range consortiums {
		credit = credit.Add(c.CreditToReceive)
		balance = balance.Add(c.OutstandingBalance)
		cPaid = cPaid.Add(c.AmountPaid)
		cToPay = cToPay.Add(c.AmountToPay)
	}
	out.Consortiums = dto.ConsortiumTotals{
		Count:              len(consortiums),
		CreditToReceive:    uc.money(credit),
		OutstandingBalance: uc.money(balance),
		AmountPaid:         uc.money(cPaid),
		AmountToPay:        uc.money(cToPay),
	}

	var open []*entity.Installment
	overdue := decimal.Zero
	for _, inst := range uc.data.Installments(store.InstallmentFilter{}) {
		if _, ok := byID[inst.LoanID]; !ok || !inst.Open() {
			continue
		}
		if inst.Status == entity.InstallmentOverdue || inst.DueDate.Before(today) {
			out.OverdueCount++
			overdue = overdue.Add(inst.Value)
		}
		open = append(open, inst)
	}
	out.OverdueAmount = uc.money(overdue)

	slices.SortFunc(open, func(a, b *entity.Installment) int {
		return cmp.Or(a.DueDate.Compare(b.DueDate), cmp.Compare(a.LoanID, b.LoanID), cmp.Compare(a.Sequence, b.Sequence))
	})
	out.Upcoming = make([]dto.UpcomingItem, 0, min(limit, len(open)))
	for _, inst := range open[:min(limit, len(open))] {
		loan := byID[inst.LoanID]
		out.Upcoming = append(out.Upcoming, dto.UpcomingItem{
			InstallmentID: inst.ID,
			LoanID:        inst.LoanID,
			Company:       names[loan.CompanyID],
			Description:   loan.Description,
			Sequence:      inst.Sequence,
			DueDate:       inst.DueDate.Format(dto.DateLayout),
			DueDateLabel:  uc.fmt.Date(inst.DueDate),
			Status:        inst.Status,
			Value:         uc.money(inst.Value),
		})
	}
	return out, nil
}

func (uc *DashboardUseCase) money(v decimal.Decimal) dto.MoneyValue {
	return dto.MoneyValue{Value: v, Formatted: uc.fmt.Currency(v)}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
