// Package memory implementa el almacenamiento de demostración: arranca con un
// dataset de ejemplo y todas las mutaciones quedan solo en memoria. Nunca falla.
package memory

import (
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
)

var _ repository.Backend = (*Backend)(nil)

// Backend colecciones en memoria con las mismas cascadas que las FK del esquema SQL.
type Backend struct {
	companies    *collection[entity.Company]
	loans        *collection[entity.Loan]
	installments *collection[entity.Installment]
	consortiums  *collection[entity.Consortium]
	users        *collection[entity.UserProfile]
}

// New construye un backend vacío.
func New() *Backend {
	b := &Backend{
		companies: newCollection(
			func(c *entity.Company) string { return c.ID },
			func(c *entity.Company, id string) { c.ID = id },
		),
		loans: newCollection(
			func(l *entity.Loan) string { return l.ID },
			func(l *entity.Loan, id string) { l.ID = id },
		),
		installments: newCollection(
			func(i *entity.Installment) string { return i.ID },
			func(i *entity.Installment, id string) { i.ID = id },
		),
		consortiums: newCollection(
			func(c *entity.Consortium) string { return c.ID },
			func(c *entity.Consortium, id string) { c.ID = id },
		),
		users: newCollection(
			func(u *entity.UserProfile) string { return u.ID },
			func(u *entity.UserProfile, id string) { u.ID = id },
		),
	}

	b.companies.onDelete = func(ids []string) {
		set := toSet(ids)
		b.loans.deleteWhere(func(l *entity.Loan) bool { return set[l.CompanyID] })
		b.consortiums.deleteWhere(func(c *entity.Consortium) bool { return set[c.CompanyID] })
	}
	b.loans.onDelete = func(ids []string) {
		set := toSet(ids)
		b.installments.deleteWhere(func(i *entity.Installment) bool { return set[i.LoanID] })
	}
	return b
}

// NewWithSampleData construye el backend de demostración precargado.
func NewWithSampleData() *Backend {
	b := New()
	b.Load(SampleData())
	return b
}

// Load reemplaza todo el contenido por el dataset.
func (b *Backend) Load(d Dataset) {
	b.companies.seed(d.Companies)
	b.loans.seed(d.Loans)
	b.installments.seed(d.Installments)
	b.consortiums.seed(d.Consortiums)
	b.users.seed(d.Users)
}

func (b *Backend) Companies() repository.CompanyRepository { return b.companies }
func (b *Backend) Loans() repository.LoanRepository { return b.loans }
func (b *Backend) Installments() repository.InstallmentRepository { return b.installments }
func (b *Backend) Consortiums() repository.ConsortiumRepository { return b.consortiums }
func (b *Backend) Users() repository.UserProfileRepository { return b.users }

// Remote siempre false: nada sale del proceso.
func (b *Backend) Remote() bool { return false }

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
