package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/validation"
)

func companyID(c *entity.Company) string { return c.ID }
func loanID(l *entity.Loan) string { return l.ID }
func installmentID(i *entity.Installment) string { return i.ID }
func consortiumID(c *entity.Consortium) string { return c.ID }
func userID(u *entity.UserProfile) string { return u.ID }

// Las llamadas al backend usan context.WithoutCancel: si el cliente HTTP se
// desconecta, la mutación termina igual y su resultado se aplica.

// SaveCompany crea o actualiza una empresa.
func (s *Store) SaveCompany(ctx context.Context, c *entity.Company) (*entity.Company, error) {
	rec := clone(c)
	if err := validation.Company(rec); err != nil {
		return nil, err
	}
	saved, err := s.backend.Companies().Upsert(context.WithoutCancel(ctx), rec)
	if err != nil {
		s.failed("guardar empresa", rec.ID, err)
		return nil, err
	}

	s.mu.Lock()
	items := splice(s.companies, saved, companyID)
	s.sortCompanies(items)
	s.companies = items
	s.mu.Unlock()

	s.log.Debug().Str("id", saved.ID).Msg("empresa guardada")
	return clone(saved), nil
}

// SaveLoan crea o actualiza un préstamo; la empresa debe existir.
func (s *Store) SaveLoan(ctx context.Context, l *entity.Loan) (*entity.Loan, error) {
	rec := clone(l)
	if err := validation.Loan(rec); err != nil {
		return nil, err
	}
	if !s.hasCompany(rec.CompanyID) {
		return nil, domain.Invalid("company_id", "la empresa %s no existe", rec.CompanyID)
	}
	saved, err := s.backend.Loans().Upsert(context.WithoutCancel(ctx), rec)
	if err != nil {
		s.failed("guardar préstamo", rec.ID, err)
		return nil, err
	}

	s.mu.Lock()
	if !contains(s.companies, func(c *entity.Company) bool { return c.ID == saved.CompanyID }) {
		s.mu.Unlock()
		s.dropOrphan(ctx, "préstamo", saved.ID, s.backend.Loans().Delete)
		return nil, fmt.Errorf("empresa %s: %w", saved.CompanyID, domain.ErrNotFound)
	}
	items := splice(s.loans, saved, loanID)
	s.sortLoans(items)
	s.loans = items
	s.mu.Unlock()

	s.log.Debug().Str("id", saved.ID).Str("company_id", saved.CompanyID).Msg("préstamo guardado")
	return clone(saved), nil
}

// SaveInstallment crea o actualiza una cuota; la secuencia es única dentro del préstamo.
func (s *Store) SaveInstallment(ctx context.Context, i *entity.Installment) (*entity.Installment, error) {
	rec := clone(i)
	if err := validation.Installment(rec); err != nil {
		return nil, err
	}
	s.mu.RLock()
	loanExists := contains(s.loans, func(l *entity.Loan) bool { return l.ID == rec.LoanID })
	duplicated := contains(s.installments, func(o *entity.Installment) bool {
		return o.LoanID == rec.LoanID && o.Sequence == rec.Sequence && o.ID != rec.ID
	})
	s.mu.RUnlock()
	if !loanExists {
		return nil, domain.Invalid("loan_id", "el préstamo %s no existe", rec.LoanID)
	}
	if duplicated {
		return nil, fmt.Errorf("cuota %d del préstamo %s: %w", rec.Sequence, rec.LoanID, domain.ErrConflict)
	}

	saved, err := s.backend.Installments().Upsert(context.WithoutCancel(ctx), rec)
	if err != nil {
		s.failed("guardar cuota", rec.ID, err)
		return nil, err
	}

	s.mu.Lock()
	if !contains(s.loans, func(l *entity.Loan) bool { return l.ID == saved.LoanID }) {
		s.mu.Unlock()
		s.dropOrphan(ctx, "cuota", saved.ID, s.backend.Installments().Delete)
		return nil, fmt.Errorf("préstamo %s: %w", saved.LoanID, domain.ErrNotFound)
	}
	items := splice(s.installments, saved, installmentID)
	s.sortInstallments(items)
	s.installments = items
	s.mu.Unlock()

	s.log.Debug().Str("id", saved.ID).Str("loan_id", saved.LoanID).Int("sequence", saved.Sequence).Msg("cuota guardada")
	return clone(saved), nil
}

// SaveConsortium crea o actualiza un consorcio; la empresa debe existir.
func (s *Store) SaveConsortium(ctx context.Context, c *entity.Consortium) (*entity.Consortium, error) {
	rec := clone(c)
	if err := validation.Consortium(rec); err != nil {
		return nil, err
	}
	if !s.hasCompany(rec.CompanyID) {
		return nil, domain.Invalid("company_id", "la empresa %s no existe", rec.CompanyID)
	}
	saved, err := s.backend.Consortiums().Upsert(context.WithoutCancel(ctx), rec)
	if err != nil {
		s.failed("guardar consorcio", rec.ID, err)
		return nil, err
	}

	s.mu.Lock()
	if !contains(s.companies, func(c *entity.Company) bool { return c.ID == saved.CompanyID }) {
		s.mu.Unlock()
		s.dropOrphan(ctx, "consorcio", saved.ID, s.backend.Consortiums().Delete)
		return nil, fmt.Errorf("empresa %s: %w", saved.CompanyID, domain.ErrNotFound)
	}
	items := splice(s.consortiums, saved, consortiumID)
	s.sortConsortiums(items)
	s.consortiums = items
	s.mu.Unlock()

	s.log.Debug().Str("id", saved.ID).Msg("consorcio guardado")
	return clone(saved), nil
}

// SaveUser crea o actualiza un perfil; el e-mail no puede repetirse.
func (s *Store) SaveUser(ctx context.Context, u *entity.UserProfile) (*entity.UserProfile, error) {
	rec := clone(u)
	if err := validation.UserProfile(rec); err != nil {
		return nil, err
	}
	s.mu.RLock()
	taken := contains(s.users, func(o *entity.UserProfile) bool { return o.Email == rec.Email && o.ID != rec.ID })
	demotesLast := rec.Role != entity.RoleMaster && s.lastMaster(rec.ID)
	s.mu.RUnlock()
	if taken {
		return nil, fmt.Errorf("e-mail %s: %w", rec.Email, domain.ErrConflict)
	}
	if demotesLast {
		return nil, fmt.Errorf("usuario %s es el único master: %w", rec.ID, domain.ErrConflict)
	}

	saved, err := s.backend.Users().Upsert(context.WithoutCancel(ctx), rec)
	if err != nil {
		s.failed("guardar usuario", rec.ID, err)
		return nil, err
	}

	s.mu.Lock()
	items := splice(s.users, saved, userID)
	s.sortUsers(items)
	s.users = items
	s.mu.Unlock()

	s.log.Debug().Str("id", saved.ID).Str("role", saved.Role).Msg("usuario guardado")
	return clone(saved), nil
}

// DeleteCompany elimina la empresa junto con sus préstamos, las cuotas de esos
// préstamos y sus consorcios.
func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	if _, err := s.Company(id); err != nil {
		return err
	}
	if err := s.backend.Companies().Delete(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar empresa", id, err)
		return err
	}

	s.mu.Lock()
	removedLoans := map[string]bool{}
	for _, l := range s.loans {
		if l.CompanyID == id {
			removedLoans[l.ID] = true
		}
	}
	s.companies = without(s.companies, func(c *entity.Company) bool { return c.ID == id })
	s.loans = without(s.loans, func(l *entity.Loan) bool { return removedLoans[l.ID] })
	s.installments = without(s.installments, func(i *entity.Installment) bool { return removedLoans[i.LoanID] })
	s.consortiums = without(s.consortiums, func(c *entity.Consortium) bool { return c.CompanyID == id })
	s.mu.Unlock()

	s.log.Debug().Str("id", id).Int("loans", len(removedLoans)).Msg("empresa eliminada")
	return nil
}

// DeleteLoan elimina el préstamo y sus cuotas.
func (s *Store) DeleteLoan(ctx context.Context, id string) error {
	if _, err := s.Loan(id); err != nil {
		return err
	}
	if err := s.backend.Loans().Delete(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar préstamo", id, err)
		return err
	}

	s.mu.Lock()
	s.loans = without(s.loans, func(l *entity.Loan) bool { return l.ID == id })
	s.installments = without(s.installments, func(i *entity.Installment) bool { return i.LoanID == id })
	s.mu.Unlock()

	s.log.Debug().Str("id", id).Msg("préstamo eliminado")
	return nil
}

func (s *Store) DeleteInstallment(ctx context.Context, id string) error {
	if _, err := s.Installment(id); err != nil {
		return err
	}
	if err := s.backend.Installments().Delete(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar cuota", id, err)
		return err
	}
	s.mu.Lock()
	s.installments = without(s.installments, func(i *entity.Installment) bool { return i.ID == id })
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteConsortium(ctx context.Context, id string) error {
	if _, err := s.Consortium(id); err != nil {
		return err
	}
	if err := s.backend.Consortiums().Delete(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar consorcio", id, err)
		return err
	}
	s.mu.Lock()
	s.consortiums = without(s.consortiums, func(c *entity.Consortium) bool { return c.ID == id })
	s.mu.Unlock()
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.User(id); err != nil {
		return err
	}
	s.mu.RLock()
	last := s.lastMaster(id)
	s.mu.RUnlock()
	if last {
		return fmt.Errorf("usuario %s es el único master: %w", id, domain.ErrConflict)
	}
	if err := s.backend.Users().Delete(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar usuario", id, err)
		return err
	}
	s.mu.Lock()
	s.users = without(s.users, func(u *entity.UserProfile) bool { return u.ID == id })
	s.mu.Unlock()
	return nil
}

// lastMaster indica si id es el único perfil master. Requiere s.mu tomado.
func (s *Store) lastMaster(id string) bool {
	masters := 0
	isMaster := false
	for _, u := range s.users {
		if u.Role == entity.RoleMaster {
			masters++
			isMaster = isMaster || u.ID == id
		}
	}
	return isMaster && masters == 1
}

func (s *Store) hasCompany(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.companies, func(c *entity.Company) bool { return c.ID == id })
}

// dropOrphan borra del backend un registro cuyo padre se eliminó mientras se
// guardaba. Si falla queda en el backend hasta el próximo Reload.
func (s *Store) dropOrphan(ctx context.Context, kind, id string, del func(context.Context, string) error) {
	if err := del(context.WithoutCancel(ctx), id); err != nil {
		s.failed("eliminar "+kind+" huérfano", id, err)
		return
	}
	s.log.Warn().Str("id", id).Msg(kind + " descartado: su padre se eliminó durante el guardado")
}

func (s *Store) failed(op, id string, err error) {
	s.log.Warn().Err(err).Str("op", op).Str("id", id).Msg("el backend rechazó la operación")
}
