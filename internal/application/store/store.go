// Package store mantiene las colecciones canónicas en memoria y media entre la API
// y el backend seleccionado (postgres o memory).
//
// Cada mutación valida, llama a Upsert/Delete del backend y solo con la
// confirmación reemplaza el registro local por el devuelto por el backend y
// reordena. Si el backend falla, el estado local no cambia.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

// Options configuración del store.
type Options struct {
	Locale string // orden alfabético de nombres; pt-BR por defecto
	Logger *logger.Logger
	Now    func() time.Time
}

// Store fuente única de verdad de las colecciones durante la vida del proceso.
// Los slices internos nunca se modifican en el lugar: cada mutación construye uno
// nuevo, así un fallo deja intactos tanto el slice como sus registros.
type Store struct {
	backend repository.Backend
	log     *logger.Logger
	now     func() time.Time

	mu           sync.RWMutex
	collator     *collate.Collator // no es seguro en concurrencia: usar solo con mu tomado en escritura
	companies    []*entity.Company
	loans        []*entity.Loan
	installments []*entity.Installment
	consortiums  []*entity.Consortium
	users        []*entity.UserProfile
}

// New construye el store y carga todas las colecciones del backend.
func New(ctx context.Context, backend repository.Backend, opts Options) (*Store, error) {
	tag, err := language.Parse(opts.Locale)
	if err != nil || opts.Locale == "" {
		tag = language.BrazilianPortuguese
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		backend:  backend,
		log:      opts.Logger.Component("store"),
		now:      opts.Now,
		collator: collate.New(tag),
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Remote informa si las mutaciones se persisten fuera del proceso.
func (s *Store) Remote() bool { return s.backend.Remote() }

// Reload vuelve a leer las cinco colecciones. Si alguna lectura falla el estado
// anterior se conserva completo.
func (s *Store) Reload(ctx context.Context) error {
	companies, err := s.backend.Companies().List(ctx)
	if err != nil {
		return fmt.Errorf("cargar empresas: %w", err)
	}
	loans, err := s.backend.Loans().List(ctx)
	if err != nil {
		return fmt.Errorf("cargar préstamos: %w", err)
	}
	installments, err := s.backend.Installments().List(ctx)
	if err != nil {
		return fmt.Errorf("cargar cuotas: %w", err)
	}
	consortiums, err := s.backend.Consortiums().List(ctx)
	if err != nil {
		return fmt.Errorf("cargar consorcios: %w", err)
	}
	users, err := s.backend.Users().List(ctx)
	if err != nil {
		return fmt.Errorf("cargar usuarios: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortCompanies(companies)
	s.sortLoans(loans)
	s.sortInstallments(installments)
	s.sortConsortiums(consortiums)
	s.sortUsers(users)
	s.companies, s.loans, s.installments, s.consortiums, s.users = companies, loans, installments, consortiums, users

	s.log.Debug().
		Bool("remote", s.backend.Remote()).
		Int("companies", len(companies)).
		Int("loans", len(loans)).
		Int("installments", len(installments)).
		Int("consortiums", len(consortiums)).
		Int("users", len(users)).
		Msg("colecciones cargadas")
	return nil
}

// ─── Lecturas ───────────────────────────────────────────────────────────────
// Todas devuelven copias: nada fuera del store puede mutar su estado.

// LoanFilter filtros opcionales de Loans.
type LoanFilter struct {
	CompanyID string
	Status    string
}

// InstallmentFilter filtros opcionales de Installments.
type InstallmentFilter struct {
	LoanID string
	Status string
}

// Companies lista las empresas ordenadas por nombre.
func (s *Store) Companies() []*entity.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWhere(s.companies, nil)
}

// Loans lista los préstamos (inicio más reciente primero).
func (s *Store) Loans(f LoanFilter) []*entity.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWhere(s.loans, func(l *entity.Loan) bool {
		return (f.CompanyID == "" || l.CompanyID == f.CompanyID) && (f.Status == "" || l.Status == f.Status)
	})
}

// Installments lista las cuotas ordenadas por secuencia.
func (s *Store) Installments(f InstallmentFilter) []*entity.Installment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWhere(s.installments, func(i *entity.Installment) bool {
		return (f.LoanID == "" || i.LoanID == f.LoanID) && (f.Status == "" || i.Status == f.Status)
	})
}

// Consortiums lista los consorcios; companyID vacío devuelve todos.
func (s *Store) Consortiums(companyID string) []*entity.Consortium {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWhere(s.consortiums, func(c *entity.Consortium) bool {
		return companyID == "" || c.CompanyID == companyID
	})
}

// Users lista los perfiles ordenados por nombre.
func (s *Store) Users() []*entity.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWhere(s.users, nil)
}

func (s *Store) Company(id string) (*entity.Company, error) {
	return findByID(&s.mu, &s.companies, id, func(c *entity.Company) string { return c.ID }, "empresa")
}

func (s *Store) Loan(id string) (*entity.Loan, error) {
	return findByID(&s.mu, &s.loans, id, func(l *entity.Loan) string { return l.ID }, "préstamo")
}

func (s *Store) Installment(id string) (*entity.Installment, error) {
	return findByID(&s.mu, &s.installments, id, func(i *entity.Installment) string { return i.ID }, "cuota")
}

func (s *Store) Consortium(id string) (*entity.Consortium, error) {
	return findByID(&s.mu, &s.consortiums, id, func(c *entity.Consortium) string { return c.ID }, "consorcio")
}

func (s *Store) User(id string) (*entity.UserProfile, error) {
	return findByID(&s.mu, &s.users, id, func(u *entity.UserProfile) string { return u.ID }, "usuario")
}

// UserForAuth busca el perfil enlazado al usuario de autenticación; si ninguno
// está enlazado todavía, prueba por e-mail (invitación recién aceptada).
func (s *Store) UserForAuth(authUserID, email string) (*entity.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if authUserID != "" {
		for _, u := range s.users {
			if u.AuthUserID == authUserID {
				return clone(u), nil
			}
		}
	}
	if email != "" {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, email) {
				return clone(u), nil
			}
		}
	}
	return nil, fmt.Errorf("perfil de %s: %w", email, domain.ErrNotFound)
}
