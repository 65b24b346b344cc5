package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/amortization"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/settlement"
)

// SettleLoan quita el préstamo y marca como pagadas sus cuotas abiertas. Si alguna
// cuota falla se devuelve el préstamo ya guardado junto con el error.
func (s *Store) SettleLoan(ctx context.Context, id string) (*entity.Loan, error) {
	loan, err := s.Loan(id)
	if err != nil {
		return nil, err
	}
	settled := settlement.SettleLoan(*loan)
	saved, err := s.SaveLoan(ctx, &settled)
	if err != nil {
		return nil, err
	}

	today := dateOnly(s.now())
	var errs []error
	for _, inst := range s.Installments(InstallmentFilter{LoanID: id}) {
		if !inst.Open() {
			continue
		}
		paid := settlement.SettleInstallment(*inst, today)
		if _, err := s.SaveInstallment(ctx, &paid); err != nil {
			errs = append(errs, fmt.Errorf("cuota %d: %w", inst.Sequence, err))
		}
	}
	if len(errs) > 0 {
		return saved, fmt.Errorf("préstamo quitado con cuotas pendientes de actualizar: %w", errors.Join(errs...))
	}
	return saved, nil
}

// SettleConsortium quita el consorcio.
func (s *Store) SettleConsortium(ctx context.Context, id string) (*entity.Consortium, error) {
	c, err := s.Consortium(id)
	if err != nil {
		return nil, err
	}
	settled := settlement.SettleConsortium(*c)
	return s.SaveConsortium(ctx, &settled)
}

// GenerateInstallments arma el cronograma del préstamo (sistema francés) y guarda
// cada cuota. Las secuencias existentes conservan su id y, si estaban pagadas, su
// estado; las secuencias que sobran se eliminan. Los campos derivados del
// préstamo se guardan al final, solo si todas las cuotas se guardaron. No es
// atómico: si una cuota falla, las anteriores ya quedaron escritas y el préstamo
// conserva sus valores previos hasta volver a generar.
func (s *Store) GenerateInstallments(ctx context.Context, loanID string) ([]*entity.Installment, error) {
	loan, err := s.Loan(loanID)
	if err != nil {
		return nil, err
	}
	if loan.StartDate.IsZero() {
		return nil, domain.Invalid("start_date", "es requerida para generar el cronograma")
	}
	in := amortization.Input{
		Principal:    loan.FinancedOrPrincipal(),
		Installments: loan.Installments,
		RatePercent:  loan.MonthlyRate,
	}
	sim, err := amortization.Simulate(in)
	if err != nil {
		return nil, err
	}
	rows, err := amortization.Schedule(in, loan.StartDate)
	if err != nil {
		return nil, err
	}

	existing := map[int]*entity.Installment{}
	for _, inst := range s.Installments(InstallmentFilter{LoanID: loanID}) {
		existing[inst.Sequence] = inst
	}

	paidCount := min(loan.PaidInstallments, loan.Installments)
	plan := make([]*entity.Installment, 0, len(rows))
	amountPaid, amountToPay := decimal.Zero, decimal.Zero
	for _, r := range rows {
		inst := &entity.Installment{LoanID: loanID, Sequence: r.Sequence, Status: entity.InstallmentPending}
		if prev, ok := existing[r.Sequence]; ok {
			inst = prev
		}
		inst.DueDate = r.DueDate
		inst.Value = r.Value
		inst.Interest = r.Interest
		if inst.Status != entity.InstallmentPaid && r.Sequence <= paidCount {
			inst = ptr(settlement.SettleInstallment(*inst, r.DueDate))
		}
		if inst.Status == entity.InstallmentPaid {
			amountPaid = amountPaid.Add(r.Value)
		} else {
			amountToPay = amountToPay.Add(r.Value)
		}
		plan = append(plan, inst)
	}

	loan.InstallmentValue = sim.InstallmentValue.Round(2)
	loan.InterestPerInstallment = sim.InterestPerInstallment.Round(2)
	loan.TotalInterest = sim.TotalInterest.Round(2)
	loan.NominalAnnualRate = amortization.NominalAnnualRate(loan.MonthlyRate).Round(4)
	loan.EffectiveAnnualRate = amortization.EffectiveAnnualRate(loan.MonthlyRate).Round(4)
	loan.PaidInstallments = 0
	for _, inst := range plan {
		if inst.Status == entity.InstallmentPaid {
			loan.PaidInstallments++
		}
	}
	loan.RemainingInstallments = loan.Installments - loan.PaidInstallments
	loan.AmountPaid = amountPaid
	loan.AmountToPay = amountToPay

	for seq, inst := range existing {
		if seq > loan.Installments {
			if err := s.DeleteInstallment(ctx, inst.ID); err != nil {
				return nil, err
			}
		}
	}
	out := make([]*entity.Installment, 0, len(plan))
	for _, inst := range plan {
		saved, err := s.SaveInstallment(ctx, inst)
		if err != nil {
			return out, fmt.Errorf("cuota %d: %w", inst.Sequence, err)
		}
		out = append(out, saved)
	}
	if _, err := s.SaveLoan(ctx, loan); err != nil {
		return out, err
	}
	s.log.Info().Str("loan_id", loanID).Int("installments", len(out)).Msg("cronograma generado")
	return out, nil
}

// ResetData vacía cuotas, préstamos y empresas en el backend, en ese orden. El
// estado local solo se limpia si los tres pasos terminan bien; si uno falla, lo
// ya borrado en el backend no se recrea y el estado local queda como estaba.
func (s *Store) ResetData(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	steps := []struct {
		name  string
		clear func(context.Context) error
	}{
		{"cuotas", s.backend.Installments().Clear},
		{"préstamos", s.backend.Loans().Clear},
		{"empresas", s.backend.Companies().Clear},
	}
	for _, step := range steps {
		if err := step.clear(ctx); err != nil {
			s.log.Error().Err(err).Str("step", step.name).Msg("reset interrumpido")
			return fmt.Errorf("vaciar %s: %w", step.name, err)
		}
	}

	s.mu.Lock()
	s.installments = nil
	s.loans = nil
	s.companies = nil
	// En el backend los consorcios caen con su empresa.
	s.consortiums = without(s.consortiums, func(c *entity.Consortium) bool { return c.CompanyID != "" })
	s.mu.Unlock()

	s.log.Info().Msg("datos reiniciados")
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
