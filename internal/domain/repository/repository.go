package repository

import (
	"context"

	"github.com/jhoicas/Creditos-api/internal/domain/entity"
)

// Collection define el puerto de persistencia de una colección (DIP).
// Las implementaciones viven en infrastructure (postgres = backend remoto, memory = demo).
//
// Upsert inserta o actualiza por ID y devuelve el registro tal como quedó guardado;
// si el ID viene vacío lo asigna el almacenamiento. Ante un fallo devuelve
// *domain.BackendError y el almacenamiento no queda modificado.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Upsert(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type (
	CompanyRepository     = Collection[*entity.Company]
	LoanRepository        = Collection[*entity.Loan]
	InstallmentRepository = Collection[*entity.Installment]
	ConsortiumRepository  = Collection[*entity.Consortium]
	UserProfileRepository = Collection[*entity.UserProfile]
)

// Backend agrupa las colecciones de un mismo almacenamiento.
type Backend interface {
	Companies() CompanyRepository
	Loans() LoanRepository
	Installments() InstallmentRepository
	Consortiums() ConsortiumRepository
	Users() UserProfileRepository
	// Remote informa si los datos se persisten fuera del proceso.
	Remote() bool
}
