package forecast

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

// GetCriticalAlerts pronostica todas las áreas en paralelo (hasta Settings.Parallelism a la vez)
// y devuelve solo las que cruzan el stock de seguridad dentro del horizonte, ordenadas por fecha.
func (uc *UseCase) GetCriticalAlerts(ctx context.Context, req dto.ForecastRequest) (*dto.CriticalAlertsResponse, error) {
	horizon, history, err := uc.bounds(req)
	if err != nil {
		return nil, err
	}
	areas, err := uc.areaRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]*dto.CriticalAlertDTO, len(areas))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.settings.Parallelism)
	for i, area := range areas {
		g.Go(func() error {
			resp, err := uc.forecastArea(gctx, area, horizon, history)
			if err != nil {
				return err
			}
			alerts[i] = toAlert(resp)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]dto.CriticalAlertDTO, 0, len(alerts))
	for _, a := range alerts {
		if a != nil {
			items = append(items, *a)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CriticalStockDate != items[j].CriticalStockDate {
			return items[i].CriticalStockDate < items[j].CriticalStockDate
		}
		return items[i].AreaName < items[j].AreaName
	})

	uc.log.Info().Int("areas", len(areas)).Int("critical", len(items)).Msg("alertas de stock crítico evaluadas")
	return &dto.CriticalAlertsResponse{
		Today:       uc.engine.Today(),
		HorizonDays: horizon,
		Items:       items,
	}, nil
}

// toAlert devuelve nil si el área no tiene fecha crítica.
func toAlert(resp *dto.ForecastResponse) *dto.CriticalAlertDTO {
	if resp.CriticalStockDate == nil {
		return nil
	}
	days := 0
	if today, err := forecast.ParseDay(resp.Today); err == nil {
		if critical, err := forecast.ParseDay(*resp.CriticalStockDate); err == nil {
			days = int(critical.Sub(today).Hours() / 24)
		}
	}
	return &dto.CriticalAlertDTO{
		AreaID:              resp.AreaID,
		AreaName:            resp.AreaName,
		CriticalStockDate:   *resp.CriticalStockDate,
		DaysUntilCritical:   days,
		CurrentStock:        resp.Parameters.CurrentStock,
		SafetyStock:         resp.Parameters.SafetyStock,
		AvgDailyConsumption: resp.Parameters.AvgDailyConsumption,
		DaysUntilEmpty:      resp.Metrics.DaysUntilEmpty,
	}
}
