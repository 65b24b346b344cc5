package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/internal/domain/repository"
	"github.com/jhoicas/Creditos-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, time.June, 10, 14, 30, 0, 0, time.UTC)

func newStore(t *testing.T, backend repository.Backend) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), backend, store.Options{
		Locale: "pt-BR",
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return s
}

func sampleStore(t *testing.T) *store.Store {
	return newStore(t, memory.NewWithSampleData())
}

// flaky envuelve una colección y falla las escrituras cuando fail está activo.
type flaky[T any] struct {
	repository.Collection[T]
	fail bool
}

func (f *flaky[T]) err(op string) error {
	return &domain.BackendError{Op: op, Message: "violación de restricción"}
}

func (f *flaky[T]) Upsert(ctx context.Context, r T) (T, error) {
	if f.fail {
		var zero T
		return zero, f.err("upsert")
	}
	return f.Collection.Upsert(ctx, r)
}

func (f *flaky[T]) Delete(ctx context.Context, id string) error {
	if f.fail {
		return f.err("delete")
	}
	return f.Collection.Delete(ctx, id)
}

func (f *flaky[T]) Clear(ctx context.Context) error {
	if f.fail {
		return f.err("clear")
	}
	return f.Collection.Clear(ctx)
}

// failingBackend backend remoto simulado con préstamos, cuotas y empresas que pueden fallar.
type failingBackend struct {
	*memory.Backend
	loans        *flaky[*entity.Loan]
	installments *flaky[*entity.Installment]
	companies    *flaky[*entity.Company]
}

func newFailingBackend() *failingBackend {
	b := memory.NewWithSampleData()
	return &failingBackend{
		Backend:      b,
		loans:        &flaky[*entity.Loan]{Collection: b.Loans()},
		installments: &flaky[*entity.Installment]{Collection: b.Installments()},
		companies:    &flaky[*entity.Company]{Collection: b.Companies()},
	}
}

func (b *failingBackend) Loans() repository.LoanRepository               { return b.loans }
func (b *failingBackend) Installments() repository.InstallmentRepository { return b.installments }
func (b *failingBackend) Companies() repository.CompanyRepository        { return b.companies }
func (b *failingBackend) Remote() bool { return true }

// hooked ejecuta before antes de cada Upsert; sirve para borrar el padre
// mientras el hijo se está guardando.
type hooked[T any] struct {
	repository.Collection[T]
	before func()
}

func (h *hooked[T]) Upsert(ctx context.Context, r T) (T, error) {
	if h.before != nil {
		h.before()
	}
	return h.Collection.Upsert(ctx, r)
}

type hookedBackend struct {
	*memory.Backend
	loans        *hooked[*entity.Loan]
	installments *hooked[*entity.Installment]
	consortiums  *hooked[*entity.Consortium]
}

func newHookedBackend() *hookedBackend {
	b := memory.NewWithSampleData()
	return &hookedBackend{
		Backend:      b,
		loans:        &hooked[*entity.Loan]{Collection: b.Loans()},
		installments: &hooked[*entity.Installment]{Collection: b.Installments()},
		consortiums:  &hooked[*entity.Consortium]{Collection: b.Consortiums()},
	}
}

func (b *hookedBackend) Loans() repository.LoanRepository               { return b.loans }
func (b *hookedBackend) Installments() repository.InstallmentRepository { return b.installments }
func (b *hookedBackend) Consortiums() repository.ConsortiumRepository   { return b.consortiums }

// ──────────────────────────────────────────────────────────────────────────────
// Guardado
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveCompany_AsignaIDEnModoDemo(t *testing.T) {
	s := newStore(t, memory.New())

	saved, err := s.SaveCompany(context.Background(), &entity.Company{Name: "Nova Ltda"})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Len(t, s.Companies(), 1)
	assert.False(t, s.Remote())
}

func TestSaveCompany_Idempotente(t *testing.T) {
	s := newStore(t, memory.New())
	rec := &entity.Company{ID: "6f1c2a9e-3b0d-4c56-9a41-0d6b5e7f1a99", Name: "Gama"}

	_, err := s.SaveCompany(context.Background(), rec)
	require.NoError(t, err)
	_, err = s.SaveCompany(context.Background(), rec)
	require.NoError(t, err)

	list := s.Companies()
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestSaveCompany_ValidacionAntesDeIO(t *testing.T) {
	s := sampleStore(t)
	before := len(s.Companies())

	_, err := s.SaveCompany(context.Background(), &entity.Company{Name: "  <b></b> "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Len(t, s.Companies(), before)
}

func TestSaveCompany_OrdenAlfabeticoLocal(t *testing.T) {
	s := newStore(t, memory.New())
	ctx := context.Background()
	for _, name := range []string{"Zeta", "Ébano", "abacaxi", "Beta"} {
		_, err := s.SaveCompany(ctx, &entity.Company{Name: name})
		require.NoError(t, err)
	}

	var names []string
	for _, c := range s.Companies() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"abacaxi", "Beta", "Ébano", "Zeta"}, names)
}

func TestSaveLoan_EmpresaInexistente(t *testing.T) {
	s := sampleStore(t)
	_, err := s.SaveLoan(context.Background(), &entity.Loan{CompanyID: "no-existe", Installments: 12})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveLoan_FalloDelBackendNoTocaElEstado(t *testing.T) {
	backend := newFailingBackend()
	s := newStore(t, backend)
	before := s.LoansSnapshot()
	beforeValues := s.Loans(store.LoanFilter{})

	backend.loans.fail = true
	loan := beforeValues[0]
	loan.Description = "cambio que no debe verse"
	_, err := s.SaveLoan(context.Background(), loan)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)
	var be *domain.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "violación de restricción", be.Message)

	after := s.LoansSnapshot()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i])
	}
	assert.NotEqual(t, "cambio que no debe verse", s.Loans(store.LoanFilter{})[0].Description)
}

func TestSaveLoan_ExitoReemplazaSoloElRegistroGuardado(t *testing.T) {
	s := sampleStore(t)
	before := s.LoansSnapshot()

	loan, err := s.Loan(memory.SampleLoanCapital)
	require.NoError(t, err)
	loan.Bank = "Caixa"
	_, err = s.SaveLoan(context.Background(), loan)
	require.NoError(t, err)

	after := s.LoansSnapshot()
	for _, a := range after {
		for _, b := range before {
			if a.ID == b.ID && a.ID != memory.SampleLoanCapital {
				assert.Same(t, b, a)
			}
		}
	}
	got, _ := s.Loan(memory.SampleLoanCapital)
	assert.Equal(t, "Caixa", got.Bank)
}

func TestLoans_OrdenInicioDescendente(t *testing.T) {
	s := sampleStore(t)
	loans := s.Loans(store.LoanFilter{})
	require.Len(t, loans, 3)
	for i := 1; i < len(loans); i++ {
		assert.False(t, loans[i].StartDate.After(loans[i-1].StartDate))
	}
	assert.Equal(t, memory.SampleLoanCapital, loans[0].ID)
}

func TestSaveInstallment_SecuenciaOrdenadaYUnica(t *testing.T) {
	s := sampleStore(t)
	ctx := context.Background()

	list := s.Installments(store.InstallmentFilter{LoanID: memory.SampleLoanCapital})
	fifth := list[4]
	fifth.Value = fifth.Value.Add(decimal.NewFromInt(1))
	_, err := s.SaveInstallment(ctx, fifth)
	require.NoError(t, err)

	list = s.Installments(store.InstallmentFilter{LoanID: memory.SampleLoanCapital})
	for i := range list {
		assert.Equal(t, i+1, list[i].Sequence)
	}

	dup := &entity.Installment{LoanID: memory.SampleLoanCapital, Sequence: 3, DueDate: fixedNow, Value: decimal.NewFromInt(10)}
	_, err = s.SaveInstallment(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSaveInstallment_PrestamoEliminadoDuranteElGuardado(t *testing.T) {
	backend := newHookedBackend()
	s := newStore(t, backend)
	ctx := context.Background()
	backend.installments.before = func() { require.NoError(t, s.DeleteLoan(ctx, memory.SampleLoanCapital)) }

	_, err := s.SaveInstallment(ctx, &entity.Installment{LoanID: memory.SampleLoanCapital, Sequence: 99, DueDate: fixedNow, Value: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Installments(store.InstallmentFilter{LoanID: memory.SampleLoanCapital}))

	stored, err := backend.Backend.Installments().List(ctx)
	require.NoError(t, err)
	for _, i := range stored {
		assert.NotEqual(t, 99, i.Sequence)
	}
}

func TestSaveLoanYConsorcio_EmpresaEliminadaDuranteElGuardado(t *testing.T) {
	backend := newHookedBackend()
	s := newStore(t, backend)
	ctx := context.Background()
	deleting := func(companyID string) func() {
		return func() { require.NoError(t, s.DeleteCompany(ctx, companyID)) }
	}

	backend.loans.before = deleting(memory.SampleCompanyAlfa)
	_, err := s.SaveLoan(ctx, &entity.Loan{CompanyID: memory.SampleCompanyAlfa, Description: "Giro", Installments: 6})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Loans(store.LoanFilter{CompanyID: memory.SampleCompanyAlfa}))

	loans, err := backend.Backend.Loans().List(ctx)
	require.NoError(t, err)
	for _, l := range loans {
		assert.NotEqual(t, "Giro", l.Description)
	}

	backend.consortiums.before = deleting(memory.SampleCompanyBeta)
	_, err = s.SaveConsortium(ctx, &entity.Consortium{CompanyID: memory.SampleCompanyBeta, Group: "G-77"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Consortiums(memory.SampleCompanyBeta))

	consortiums, err := backend.Backend.Consortiums().List(ctx)
	require.NoError(t, err)
	for _, c := range consortiums {
		assert.NotEqual(t, "G-77", c.Group)
	}
}

func TestSaveUser_EmailRepetido(t *testing.T) {
	s := sampleStore(t)
	_, err := s.SaveUser(context.Background(), &entity.UserProfile{Name: "Otra", Email: "MARIANA@alfa.com.br", Role: entity.RoleFinance})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

const (
	userMariana = "a9e7c3b1-2d4f-4a6b-8c0e-1f3a5b7c9d01"
	userRafael  = "a9e7c3b1-2d4f-4a6b-8c0e-1f3a5b7c9d02"
)

func TestUsuarios_NoSeQuedaSinMaster(t *testing.T) {
	s := sampleStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteUser(ctx, userMariana), domain.ErrConflict)

	mariana, err := s.User(userMariana)
	require.NoError(t, err)
	mariana.Role = entity.RoleFinance
	_, err = s.SaveUser(ctx, mariana)
	assert.ErrorIs(t, err, domain.ErrConflict)

	still, err := s.User(userMariana)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleMaster, still.Role)

	rafael, err := s.User(userRafael)
	require.NoError(t, err)
	rafael.Role = entity.RoleMaster
	_, err = s.SaveUser(ctx, rafael)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, userMariana))
	assert.ErrorIs(t, s.DeleteUser(ctx, userRafael), domain.ErrConflict)
}

func TestSave_ContextoCanceladoIgualSeAplica(t *testing.T) {
	s := newStore(t, memory.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.SaveCompany(ctx, &entity.Company{Name: "Tardía"})
	require.NoError(t, err)
	assert.Len(t, s.Companies(), 1)
}

func TestLecturas_DevuelvenCopias(t *testing.T) {
	s := sampleStore(t)
	s.Companies()[0].Name = "mutado"
	assert.NotEqual(t, "mutado", s.Companies()[0].Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Eliminación y reset
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCompany_Cascada(t *testing.T) {
	s := sampleStore(t)
	ctx := context.Background()

	betaLoans := s.Loans(store.LoanFilter{CompanyID: memory.SampleCompanyBeta})
	require.Len(t, betaLoans, 2)

	require.NoError(t, s.DeleteCompany(ctx, memory.SampleCompanyBeta))

	assert.Empty(t, s.Loans(store.LoanFilter{CompanyID: memory.SampleCompanyBeta}))
	for _, l := range betaLoans {
		assert.Empty(t, s.Installments(store.InstallmentFilter{LoanID: l.ID}))
	}
	assert.Empty(t, s.Consortiums(memory.SampleCompanyBeta))
	assert.Len(t, s.Installments(store.InstallmentFilter{}), 24)
	assert.Len(t, s.Companies(), 1)
}

func TestDeleteCompany_UnicaEmpresaYResetVacio(t *testing.T) {
	s := newStore(t, memory.New())
	ctx := context.Background()

	c, err := s.SaveCompany(ctx, &entity.Company{Name: "Única"})
	require.NoError(t, err)
	l, err := s.SaveLoan(ctx, &entity.Loan{CompanyID: c.ID, Installments: 2, StartDate: fixedNow})
	require.NoError(t, err)
	for seq := 1; seq <= 2; seq++ {
		_, err := s.SaveInstallment(ctx, &entity.Installment{LoanID: l.ID, Sequence: seq, DueDate: fixedNow, Value: decimal.NewFromInt(50)})
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteCompany(ctx, c.ID))
	assert.Empty(t, s.Loans(store.LoanFilter{}))
	assert.Empty(t, s.Installments(store.InstallmentFilter{}))

	require.NoError(t, s.ResetData(ctx))
	assert.Empty(t, s.Companies())
	assert.Empty(t, s.Loans(store.LoanFilter{}))
	assert.Empty(t, s.Installments(store.InstallmentFilter{}))
}

func TestDeleteLoan_EliminaCuotas(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.DeleteLoan(context.Background(), memory.SampleLoanMaquina))
	assert.Empty(t, s.Installments(store.InstallmentFilter{LoanID: memory.SampleLoanMaquina}))
	assert.Len(t, s.Loans(store.LoanFilter{}), 2)
}

func TestDelete_Inexistente(t *testing.T) {
	s := sampleStore(t)
	assert.ErrorIs(t, s.DeleteCompany(context.Background(), "nada"), domain.ErrNotFound)
	assert.ErrorIs(t, s.DeleteUser(context.Background(), "nada"), domain.ErrNotFound)
}

func TestResetData_LimpiaTodo(t *testing.T) {
	s := sampleStore(t)
	require.NoError(t, s.ResetData(context.Background()))

	assert.Empty(t, s.Companies())
	assert.Empty(t, s.Loans(store.LoanFilter{}))
	assert.Empty(t, s.Installments(store.InstallmentFilter{}))
	assert.Empty(t, s.Consortiums(""))
	assert.Len(t, s.Users(), 3, "los perfiles no forman parte del reset")
}

func TestResetData_FalloParcialNoTocaElEstadoLocal(t *testing.T) {
	backend := newFailingBackend()
	s := newStore(t, backend)
	backend.loans.fail = true

	err := s.ResetData(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)

	assert.Len(t, s.Companies(), 2)
	assert.Len(t, s.Loans(store.LoanFilter{}), 3)
	assert.Len(t, s.Installments(store.InstallmentFilter{}), 84, "lo local queda como antes del reset")

	remote, _ := backend.Installments().List(context.Background())
	assert.Empty(t, remote, "en el backend las cuotas ya se borraron")
}

// ──────────────────────────────────────────────────────────────────────────────
// Quitación y cronograma
// ──────────────────────────────────────────────────────────────────────────────

func TestSettleLoan(t *testing.T) {
	s := sampleStore(t)
	before, _ := s.Loan(memory.SampleLoanCapital)

	loan, err := s.SettleLoan(context.Background(), memory.SampleLoanCapital)
	require.NoError(t, err)

	assert.Equal(t, entity.LoanFinished, loan.Status)
	assert.Equal(t, loan.Installments, loan.PaidInstallments)
	assert.Zero(t, loan.RemainingInstallments)
	assert.True(t, loan.AmountToPay.IsZero())
	assert.True(t, loan.AmountPaid.Equal(before.AmountPaid.Add(before.AmountToPay)))

	for _, i := range s.Installments(store.InstallmentFilter{LoanID: memory.SampleLoanCapital}) {
		assert.Equal(t, entity.InstallmentPaid, i.Status)
		require.NotNil(t, i.PaidAt)
	}
}

func TestSettleConsortium(t *testing.T) {
	s := sampleStore(t)
	c := s.Consortiums(memory.SampleCompanyAlfa)[0]

	got, err := s.SettleConsortium(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Zero(t, got.InstallmentsToPay)
	assert.True(t, got.AmountToPay.IsZero())
	assert.True(t, got.OutstandingBalance.IsZero())
	assert.Equal(t, got.TotalInstallments, got.PaidInstallments)
}

func TestGenerateInstallments(t *testing.T) {
	s := sampleStore(t)
	ctx := context.Background()

	loan, err := s.SaveLoan(ctx, &entity.Loan{
		CompanyID:    memory.SampleCompanyAlfa,
		Principal:    decimal.NewFromInt(1200),
		Installments: 12,
		MonthlyRate:  decimal.Zero,
		StartDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	list, err := s.GenerateInstallments(ctx, loan.ID)
	require.NoError(t, err)
	require.Len(t, list, 12)
	for i, inst := range list {
		assert.Equal(t, i+1, inst.Sequence)
		assert.Equal(t, "100.00", inst.Value.StringFixed(2))
		assert.Equal(t, entity.InstallmentPending, inst.Status)
	}

	updated, _ := s.Loan(loan.ID)
	assert.Equal(t, "100.00", updated.InstallmentValue.StringFixed(2))
	assert.Equal(t, 12, updated.RemainingInstallments)
	assert.True(t, updated.AmountToPay.Equal(decimal.NewFromInt(1200)))
	assert.True(t, updated.Consistent())

	again, err := s.GenerateInstallments(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, again[0].ID, "regenerar conserva los ids")
	assert.Len(t, s.Installments(store.InstallmentFilter{LoanID: loan.ID}), 12)
}

func TestGenerateInstallments_FalloEnCuotasNoTocaElPrestamo(t *testing.T) {
	backend := newFailingBackend()
	s := newStore(t, backend)
	ctx := context.Background()

	loan, err := s.SaveLoan(ctx, &entity.Loan{
		CompanyID:    memory.SampleCompanyAlfa,
		Principal:    decimal.NewFromInt(1200),
		Installments: 12,
		MonthlyRate:  decimal.NewFromInt(2),
		StartDate:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	backend.installments.fail = true
	_, err = s.GenerateInstallments(ctx, loan.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackend)

	after, err := s.Loan(loan.ID)
	require.NoError(t, err)
	assert.True(t, after.InstallmentValue.IsZero())
	assert.True(t, after.AmountToPay.IsZero())
	assert.Zero(t, after.RemainingInstallments)
	assert.Empty(t, s.Installments(store.InstallmentFilter{LoanID: loan.ID}))

	backend.installments.fail = false
	list, err := s.GenerateInstallments(ctx, loan.ID)
	require.NoError(t, err)
	assert.Len(t, list, 12)
	after, _ = s.Loan(loan.ID)
	assert.Equal(t, 12, after.RemainingInstallments)
}

func TestGenerateInstallments_SinFechaDeInicio(t *testing.T) {
	s := sampleStore(t)
	loan, err := s.SaveLoan(context.Background(), &entity.Loan{CompanyID: memory.SampleCompanyAlfa, Principal: decimal.NewFromInt(100), Installments: 2})
	require.NoError(t, err)

	_, err = s.GenerateInstallments(context.Background(), loan.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserForAuth(t *testing.T) {
	s := sampleStore(t)
	u, err := s.UserForAuth("", "Juliana@Beta.com.br")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleFinance, u.Role)

	_, err = s.UserForAuth("x", "nadie@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
