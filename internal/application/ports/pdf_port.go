package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// LoanStatement datos del extracto de un préstamo a una fecha.
type LoanStatement struct {
	Company      *entity.Company
	Loan         *entity.Loan
	Installments []*entity.Installment
	IssuedAt     time.Time
}

// StatementPDFGenerator genera el PDF del extracto.
type StatementPDFGenerator interface {
	GenerateLoanStatement(ctx context.Context, st LoanStatement) ([]byte, error)
}
