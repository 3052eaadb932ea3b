package forecast

import (
	"math"
	"time"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

// Input datos ya cargados de un área. Lo arma el caso de uso desde la BD o la CLI desde archivos.
type Input struct {
	AreaID           string
	AreaName         string
	Records          []entity.RawStockRecord // libro crudo; los de otras áreas se descartan
	Masters          []entity.PlantMasterData
	Planned          []entity.PlannedDelivery
	HorizonDays      int
	HistoryDays      int
	GenerateSchedule bool // sin entregas planificadas, usar la frecuencia típica del área
	Resolver         forecast.ResolverConfig
}

// Build ejecuta el pipeline completo de un área: normalización, parámetros, entregas,
// proyección, comparación predicho vs real y métricas.
func Build(engine *forecast.Engine, in Input) (*dto.ForecastResponse, error) {
	today := engine.Today()

	records := in.Records
	if in.AreaName != "" {
		records = forecast.FilterByArea(records, in.AreaName)
	}

	areaRef := in.AreaName
	if _, ok := forecast.FindMasterData(in.Masters, in.AreaID); ok {
		areaRef = in.AreaID
	}
	params := forecast.ResolveParameters(in.Masters, areaRef, in.Resolver)

	deliveries := withinHorizon(forecast.MergeDeliveries(in.Planned), today, in.HorizonDays)
	if in.GenerateSchedule && len(deliveries) == 0 {
		if master, ok := forecast.FindMasterData(in.Masters, areaRef); ok {
			deliveries = forecast.GenerateDeliverySchedule(today, in.HorizonDays,
				master.DeliveryQuantity, master.DeliveryFrequencyDays)
		}
	}

	result, err := engine.Predict(forecast.NormalizeHistory(records), deliveries, params, in.HorizonDays, in.HistoryDays)
	if err != nil {
		return nil, err
	}
	comparison := forecast.BuildComparison(records, result, "", params.AvgDailyConsumption, in.Resolver)

	return &dto.ForecastResponse{
		AreaID:            in.AreaID,
		AreaName:          in.AreaName,
		Today:             today,
		HorizonDays:       in.HorizonDays,
		HistoryDays:       in.HistoryDays,
		Parameters:        toParametersDTO(params),
		PrognosisData:     toProjectionDTOs(result.PrognosisData),
		CriticalStockDate: result.CriticalStockDate,
		Deliveries:        toDeliveryDTOs(deliveries),
		Metrics:           toMetricsDTO(forecast.AggregateMetrics(result, params)),
		Comparison:        comparison,
		ComparisonSummary: toSummaryDTO(forecast.SummarizeComparison(comparison)),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}

// withinHorizon conserva las entregas con llegada en (today, today+horizon].
func withinHorizon(deliveries []entity.PlannedDelivery, today string, horizon int) []entity.PlannedDelivery {
	last, err := forecast.AddDays(today, horizon)
	if err != nil {
		return nil
	}
	out := make([]entity.PlannedDelivery, 0, len(deliveries))
	for _, d := range deliveries {
		if d.ArrivalDate > today && d.ArrivalDate <= last {
			out = append(out, d)
		}
	}
	return out
}

func toParametersDTO(p entity.PlantParameters) dto.ParametersDTO {
	return dto.ParametersDTO{
		CurrentStock:        p.CurrentStock,
		SafetyStock:         p.SafetyStock,
		AvgDailyConsumption: p.AvgDailyConsumption,
	}
}

func toProjectionDTOs(rows []entity.DailyProjectionData) []dto.DailyProjectionDTO {
	out := make([]dto.DailyProjectionDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.DailyProjectionDTO{
			Date:        r.Date,
			StockLevel:  r.StockLevel,
			Consumption: r.Consumption,
			Arrivals:    r.Arrivals,
			IsActual:    r.IsActual,
			Synthesized: r.Synthesized,
		})
	}
	return out
}

func toDeliveryDTOs(deliveries []entity.PlannedDelivery) []dto.DeliveryDTO {
	out := make([]dto.DeliveryDTO, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, toDeliveryDTO(d))
	}
	return out
}

func toDeliveryDTO(d entity.PlannedDelivery) dto.DeliveryDTO {
	return dto.DeliveryDTO{
		ID:          d.ID,
		ArrivalDate: d.ArrivalDate,
		Quantity:    d.Quantity,
		Source:      d.Source,
		CreatedAt:   d.CreatedAt,
	}
}

func toMetricsDTO(m forecast.Metrics) dto.MetricsDTO {
	days, unbounded := finite(m.DaysUntilEmpty)
	return dto.MetricsDTO{
		DaysUntilEmpty:            days,
		DaysUntilEmptyUnbounded:   unbounded,
		AvgProjectedStock:         m.AvgProjectedStock,
		TotalProjectedConsumption: m.TotalProjectedConsumption,
		TotalProjectedArrivals:    m.TotalProjectedArrivals,
		StockTurnoverRate:         m.StockTurnoverRate,
		IsStockCritical:           m.IsStockCritical,
		ProjectionAccuracy:        m.ProjectionAccuracy,
	}
}

func toSummaryDTO(s forecast.ComparisonSummary) dto.ComparisonSummaryDTO {
	days, unbounded := finite(s.DaysUntilEmpty)
	return dto.ComparisonSummaryDTO{
		StockOut:                 s.StockOut,
		PredictedStockOut:        s.PredictedStockOut,
		Deviation:                s.Deviation,
		ClosingStock:             s.ClosingStock,
		AvgAchievementPercentage: s.AvgAchievementPercentage,
		AvgTurnoverRatio:         s.AvgTurnoverRatio,
		AvgEfficiency:            s.AvgEfficiency,
		DaysUntilEmpty:           days,
		DaysUntilEmptyUnbounded:  unbounded,
		RowsWithActual:           s.RowsWithActual,
	}
}

// finite convierte ±Inf/NaN en nil (JSON no los admite) e indica si el valor era ilimitado.
func finite(f float64) (*float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, math.IsInf(f, 1)
	}
	v := math.Round(f*100) / 100
	return &v, false
}
