// Package postgres implementa el backend conectado sobre PostgreSQL (pgx).
package postgres

import (
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
)

var _ repository.Backend = (*Backend)(nil)

// Backend agrupa las cinco colecciones sobre el mismo Querier (pool o tx).
type Backend struct {
	companies    *collection[entity.Company]
	loans        *collection[entity.Loan]
	installments *collection[entity.Installment]
	consortiums  *collection[entity.Consortium]
	users        *collection[entity.UserProfile]
}

// NewBackend construye el backend. Pasar pool o tx (Querier).
func NewBackend(q Querier) *Backend {
	return &Backend{
		companies:    newCollection(q, companiesTable),
		loans:        newCollection(q, loansTable),
		installments: newCollection(q, installmentsTable),
		consortiums:  newCollection(q, consortiumsTable),
		users:        newCollection(q, usersTable),
	}
}

func (b *Backend) Companies() repository.CompanyRepository { return b.companies }
func (b *Backend) Loans() repository.LoanRepository { return b.loans }
func (b *Backend) Installments() repository.InstallmentRepository { return b.installments }
func (b *Backend) Consortiums() repository.ConsortiumRepository { return b.consortiums }
func (b *Backend) Users() repository.UserProfileRepository { return b.users }

// Remote siempre true.
func (b *Backend) Remote() bool { return true }
