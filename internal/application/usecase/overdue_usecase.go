package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/Creditos-api/internal/application/store"
	"github.com/jhoicas/Creditos-api/internal/domain/entity"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

// InstallmentWriter lo que el barrido necesita del store.
type InstallmentWriter interface {
	Installments(f store.InstallmentFilter) []*entity.Installment
	SaveInstallment(ctx context.Context, i *entity.Installment) (*entity.Installment, error)
}

// OverdueUseCase marca como vencidas las cuotas pendientes cuyo vencimiento ya pasó.
type OverdueUseCase struct {
	data InstallmentWriter
	log  *logger.Logger
}

func NewOverdueUseCase(data InstallmentWriter, log *logger.Logger) *OverdueUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OverdueUseCase{data: data, log: log.Component("overdue")}
}

// Run devuelve cuántas cuotas cambiaron. Cada cuota pasa por el contrato de
// guardado del store; un fallo no detiene el resto y se informa al final.
func (uc *OverdueUseCase) Run(ctx context.Context, now time.Time) (int, error) {
	today := truncateDay(now)
	changed := 0
	var errs []error
	for _, inst := range uc.data.Installments(store.InstallmentFilter{Status: entity.InstallmentPending}) {
		if !inst.DueDate.Before(today) {
			continue
		}
		inst.Status = entity.InstallmentOverdue
		if _, err := uc.data.SaveInstallment(ctx, inst); err != nil {
			errs = append(errs, fmt.Errorf("cuota %s: %w", inst.ID, err))
			continue
		}
		changed++
	}
	ev := uc.log.Info()
	if len(errs) > 0 {
		ev = uc.log.Warn().Int("failed", len(errs))
	}
	ev.Int("changed", changed).Time("today", today).Msg("barrido de cuotas vencidas")
	return changed, errors.Join(errs...)
}
