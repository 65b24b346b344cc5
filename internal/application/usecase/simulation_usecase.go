package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Creditos-api/internal/application/dto"
	"github.com/jhoicas/Creditos-api/internal/application/ports"
	"github.com/jhoicas/Creditos-api/internal/domain"
	"github.com/jhoicas/Creditos-api/internal/domain/amortization"
	"github.com/jhoicas/Creditos-api/pkg/format"
	"github.com/jhoicas/Creditos-api/pkg/logger"
)

// DefaultSimulationTTL vigencia de un resultado en caché si no se configura otra.
const DefaultSimulationTTL = 30 * time.Minute

// SimulationUseCase simulador de préstamos con caché por parámetros de entrada.
type SimulationUseCase struct {
	cache ports.SimulationCache // opcional
	ttl   time.Duration
	fmt   *format.Formatter
	log   *logger.Logger
}

// NewSimulationUseCase construye el caso de uso. cache puede ser nil.
func NewSimulationUseCase(cache ports.SimulationCache, ttl time.Duration, f *format.Formatter, log *logger.Logger) *SimulationUseCase {
	if ttl <= 0 {
		ttl = DefaultSimulationTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SimulationUseCase{cache: cache, ttl: ttl, fmt: f, log: log.Component("simulation")}
}

// Simulate valida la entrada, calcula y formatea. El resultado se guarda en caché
// bajo una clave derivada de los valores normalizados de la entrada.
func (uc *SimulationUseCase) Simulate(ctx context.Context, req dto.SimulationRequest) (*dto.SimulationResponse, error) {
	in := amortization.Input{Principal: req.Principal, Installments: req.Installments, RatePercent: req.Rate}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var start time.Time
	if req.IncludeSchedule {
		var err error
		if start, err = dto.ParseDate("start_date", req.StartDate); err != nil {
			return nil, err
		}
		if start.IsZero() {
			return nil, domain.Invalid("start_date", "es requerida para generar el cronograma")
		}
	}

	key := simulationKey(req, start)
	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, key); ok {
			var out dto.SimulationResponse
			if err := json.Unmarshal(raw, &out); err == nil {
				out.Cached = true
				return &out, nil
			}
			uc.log.Warn().Str("key", key).Msg("entrada de caché ilegible, se recalcula")
		}
	}

	res, err := amortization.Simulate(in)
	if err != nil {
		return nil, err
	}
	eff := amortization.EffectiveAnnualRate(in.RatePercent)
	out := &dto.SimulationResponse{
		InstallmentValue:       res.InstallmentValue,
		TotalAmount:            res.TotalAmount,
		TotalInterest:          res.TotalInterest,
		InterestPerInstallment: res.InterestPerInstallment,
		EffectiveAnnualRate:    eff,
		Formatted: dto.SimulationFormatted{
			InstallmentValue:       uc.fmt.Currency(res.InstallmentValue),
			TotalAmount:            uc.fmt.Currency(res.TotalAmount),
			TotalInterest:          uc.fmt.Currency(res.TotalInterest),
			InterestPerInstallment: uc.fmt.Currency(res.InterestPerInstallment),
			EffectiveAnnualRate:    uc.fmt.Percent(eff),
		},
	}
	if req.IncludeSchedule {
		rows, err := amortization.Schedule(in, start)
		if err != nil {
			return nil, err
		}
		out.Schedule = make([]dto.ScheduleRowResponse, 0, len(rows))
		for _, r := range rows {
			out.Schedule = append(out.Schedule, dto.ScheduleRowResponse{
				Sequence:     r.Sequence,
				DueDate:      r.DueDate.Format(dto.DateLayout),
				Value:        r.Value,
				Interest:     r.Interest,
				Amortization: r.Amortization,
				Balance:      r.Balance,
			})
		}
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(out); err == nil {
			if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
				uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar la simulación en caché")
			}
		}
	}
	return out, nil
}

// simulationKey 100000 y 100000.00 producen la misma clave.
func simulationKey(req dto.SimulationRequest, start time.Time) string {
	key := fmt.Sprintf("sim:%s:%d:%s", req.Principal.String(), req.Installments, req.Rate.String())
	if req.IncludeSchedule {
		key += ":" + start.Format(dto.DateLayout)
	}
	return key
}
