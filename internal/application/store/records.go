package store

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

func clone[E any](p *E) *E {
	c := *p
	return &c
}

// cloneWhere copia los registros que cumplen keep (nil = todos).
func cloneWhere[E any](items []*E, keep func(*E) bool) []*E {
	out := make([]*E, 0, len(items))
	for _, it := range items {
		if keep == nil || keep(it) {
			out = append(out, clone(it))
		}
	}
	return out
}

func findByID[E any](mu *sync.RWMutex, items *[]*E, id string, getID func(*E) string, label string) (*E, error) {
	mu.RLock()
	defer mu.RUnlock()
	for _, it := range *items {
		if getID(it) == id {
			return clone(it), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", label, id, domain.ErrNotFound)
}

// splice devuelve un slice nuevo con rec en lugar del registro de mismo id, o
// agregado al final si no existía.
func splice[E any](items []*E, rec *E, getID func(*E) string) []*E {
	out := make([]*E, 0, len(items)+1)
	replaced := false
	for _, it := range items {
		if getID(it) == getID(rec) {
			out = append(out, rec)
			replaced = true
			continue
		}
		out = append(out, it)
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

// without devuelve un slice nuevo sin los registros que cumplen drop.
func without[E any](items []*E, drop func(*E) bool) []*E {
	out := make([]*E, 0, len(items))
	for _, it := range items {
		if !drop(it) {
			out = append(out, it)
		}
	}
	return out
}

func contains[E any](items []*E, match func(*E) bool) bool {
	return slices.ContainsFunc(items, match)
}

// ─── Orden de presentación ──────────────────────────────────────────────────

func (s *Store) sortCompanies(items []*entity.Company) {
	slices.SortStableFunc(items, func(a, b *entity.Company) int {
		return cmp.Or(s.collator.CompareString(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}

// sortLoans inicio más reciente primero; sin fecha al final.
func (s *Store) sortLoans(items []*entity.Loan) {
	slices.SortStableFunc(items, func(a, b *entity.Loan) int {
		return cmp.Or(b.StartDate.Compare(a.StartDate), cmp.Compare(a.ID, b.ID))
	})
}

func (s *Store) sortInstallments(items []*entity.Installment) {
	slices.SortStableFunc(items, func(a, b *entity.Installment) int {
		return cmp.Or(cmp.Compare(a.Sequence, b.Sequence), cmp.Compare(a.LoanID, b.LoanID))
	})
}

func (s *Store) sortConsortiums(items []*entity.Consortium) {
	slices.SortStableFunc(items, func(a, b *entity.Consortium) int {
		return cmp.Or(
			s.collator.CompareString(a.Observation, b.Observation),
			s.collator.CompareString(a.Group, b.Group),
			s.collator.CompareString(a.Quota, b.Quota),
			cmp.Compare(a.ID, b.ID),
		)
	})
}

func (s *Store) sortUsers(items []*entity.UserProfile) {
	slices.SortStableFunc(items, func(a, b *entity.UserProfile) int {
		return cmp.Or(s.collator.CompareString(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
}
