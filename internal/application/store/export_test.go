package store

import "github.com/jhoicas/Creditos-api/internal/domain/entity"

// LoansSnapshot expone el slice interno para comprobar identidad de punteros.
func (s *Store) LoansSnapshot() []*entity.Loan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loans
}
