package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// Engine proyecta el stock día a día combinando historia real, entregas planificadas y los
// parámetros del área. No guarda estado: la única dependencia es el reloj que define "hoy".
type Engine struct {
	now func() time.Time
}

// NewEngine construye el motor usando el reloj del sistema.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// NewEngineWithClock construye el motor con un reloj fijo (tests, CLI con --today).
func NewEngineWithClock(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Today devuelve el día calendario que el motor usa como ancla.
func (e *Engine) Today() string {
	return FormatDay(CalendarDay(e.now()))
}

// Predict produce historyWindowDays filas de historia, la fila de hoy y horizonDays filas
// proyectadas, junto con el primer día proyectado bajo el stock de seguridad.
//
//  1. Historia (de más antiguo a ayer): el registro del día si existe; si no, una fila
//     sintética con currentStock/avgDailyConsumption. Todas con IsActual=true.
//  2. Hoy: currentStock y avgDailyConsumption, con los ingresos reales del día si hay registro.
//  3. Proyección: stock = max(0, stock + entregas del día − consumo medio).
//  4. Fecha crítica: el primer cruce bajo safetyStock; una recuperación posterior no la borra.
func (e *Engine) Predict(
	history []entity.HistoricalStockEntry,
	deliveries []entity.PlannedDelivery,
	params entity.PlantParameters,
	horizonDays, historyWindowDays int,
) (entity.PredictionResult, error) {
	if err := validateInputs(params, horizonDays, historyWindowDays); err != nil {
		return entity.PredictionResult{}, err
	}

	today := CalendarDay(e.now())
	current := nonNegative(params.CurrentStock)
	consumption := nonNegative(params.AvgDailyConsumption)

	byDate := make(map[string]entity.HistoricalStockEntry, len(history))
	for _, h := range history {
		if day, ok := dayKey(h.Date); ok {
			byDate[day] = h
		}
	}

	rows := make([]entity.DailyProjectionData, 0, historyWindowDays+1+horizonDays)

	for i := historyWindowDays; i >= 1; i-- {
		day := FormatDay(today.AddDate(0, 0, -i))
		if h, ok := byDate[day]; ok {
			rows = append(rows, entity.DailyProjectionData{
				Date:        day,
				StockLevel:  nonNegative(h.StockLevel),
				Consumption: nonNegative(h.Consumption),
				Arrivals:    nonNegative(h.Arrivals),
				IsActual:    true,
			})
			continue
		}
		rows = append(rows, entity.DailyProjectionData{
			Date:        day,
			StockLevel:  current,
			Consumption: consumption,
			IsActual:    true,
			Synthesized: true,
		})
	}

	todayKey := FormatDay(today)
	var todayArrivals float64
	if h, ok := byDate[todayKey]; ok {
		todayArrivals = nonNegative(h.Arrivals)
	}
	rows = append(rows, entity.DailyProjectionData{
		Date:        todayKey,
		StockLevel:  current,
		Consumption: consumption,
		Arrivals:    todayArrivals,
		IsActual:    true,
	})

	inbound := make(map[string]float64, len(deliveries))
	for _, d := range deliveries {
		if day, ok := dayKey(d.ArrivalDate); ok {
			inbound[day] += nonNegative(d.Quantity)
		}
	}

	var critical *string
	projected := current
	for i := 1; i <= horizonDays; i++ {
		day := FormatDay(today.AddDate(0, 0, i))
		stockIn := inbound[day]
		projected = math.Max(0, projected+stockIn-consumption)
		rows = append(rows, entity.DailyProjectionData{
			Date:        day,
			StockLevel:  projected,
			Consumption: consumption,
			Arrivals:    stockIn,
			IsActual:    false,
		})
		if critical == nil && projected < params.SafetyStock {
			d := day
			critical = &d
		}
	}

	return entity.PredictionResult{PrognosisData: rows, CriticalStockDate: critical}, nil
}

func validateInputs(params entity.PlantParameters, horizonDays, historyWindowDays int) error {
	if !isFinite(params.CurrentStock) {
		return fmt.Errorf("current_stock no numérico: %w", domain.ErrInvalidParameters)
	}
	if !isFinite(params.SafetyStock) || !isFinite(params.AvgDailyConsumption) {
		return fmt.Errorf("safety_stock/avg_daily_consumption no numéricos: %w", domain.ErrInvalidParameters)
	}
	if horizonDays <= 0 {
		return fmt.Errorf("horizonte %d días: %w", horizonDays, domain.ErrInvalidParameters)
	}
	if historyWindowDays < 0 {
		return fmt.Errorf("ventana histórica %d días: %w", historyWindowDays, domain.ErrInvalidParameters)
	}
	return nil
}
