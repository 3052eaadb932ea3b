package forecast

import (
	"math"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// Metrics resumen agregado de una proyección para el dashboard.
// DaysUntilEmpty es +Inf cuando el consumo medio es cero.
type Metrics struct {
	DaysUntilEmpty            float64
	AvgProjectedStock         float64
	TotalProjectedConsumption float64
	TotalProjectedArrivals    float64
	StockTurnoverRate         float64 // consumo proyectado / stock de apertura × 100
	IsStockCritical           bool
	ProjectionAccuracy        float64 // 100 − MAPE del consumo medio frente a la historia real
}

// ComparisonSummary agregados de las filas predicho vs real.
type ComparisonSummary struct {
	StockOut                 ColumnStats
	PredictedStockOut        ColumnStats
	Deviation                ColumnStats
	ClosingStock             ColumnStats
	AvgAchievementPercentage float64
	AvgTurnoverRatio         float64
	AvgEfficiency            float64
	DaysUntilEmpty           float64
	RowsWithActual           int
}

// DaysUntilEmpty = stock de cierre / salida media diaria; +Inf si la salida media no es positiva.
func DaysUntilEmpty(latestClosingStock, avgDailyStockOut float64) float64 {
	if !positive(avgDailyStockOut) {
		return math.Inf(1)
	}
	return nonNegative(latestClosingStock) / avgDailyStockOut
}

// AggregateMetrics deriva los indicadores de la proyección.
// El stock de apertura es el de la fila de hoy (la última con IsActual).
func AggregateMetrics(result entity.PredictionResult, params entity.PlantParameters) Metrics {
	opening := nonNegative(params.CurrentStock)
	todayIdx := -1
	for i, row := range result.PrognosisData {
		if row.IsActual {
			todayIdx = i
		}
	}
	if todayIdx >= 0 {
		opening = result.PrognosisData[todayIdx].StockLevel
	}

	var stockLevels []float64
	var totalConsumption, totalArrivals float64
	for _, row := range result.ProjectedRows() {
		stockLevels = append(stockLevels, row.StockLevel)
		totalConsumption += row.Consumption
		totalArrivals += row.Arrivals
	}

	m := Metrics{
		DaysUntilEmpty:            DaysUntilEmpty(opening, params.AvgDailyConsumption),
		AvgProjectedStock:         round2(SummarizeColumn(stockLevels).Avg),
		TotalProjectedConsumption: round2(totalConsumption),
		TotalProjectedArrivals:    round2(totalArrivals),
		IsStockCritical:           result.CriticalStockDate != nil,
	}
	if opening > 0 {
		m.StockTurnoverRate = round2(totalConsumption / opening * 100)
	}

	// La fila de hoy usa el consumo medio, no un dato observado: queda fuera del error.
	if todayIdx > 0 {
		m.ProjectionAccuracy = projectionAccuracy(result.PrognosisData[:todayIdx], params.AvgDailyConsumption)
	}
	return m
}

func projectionAccuracy(history []entity.DailyProjectionData, avgConsumption float64) float64 {
	var errs []float64
	for _, row := range history {
		if row.Synthesized || row.Consumption <= 0 {
			continue
		}
		errs = append(errs, math.Abs(avgConsumption-row.Consumption)/row.Consumption)
	}
	if len(errs) == 0 {
		return 0
	}
	acc := 100 - mean(errs)*100
	return round2(math.Min(100, math.Max(0, acc)))
}

// applyRowMetrics completa desviación, cumplimiento, rotación y eficiencia de una fila.
func applyRowMetrics(row *ComparisonRow) {
	if row.HasActual {
		dev := row.StockOut - row.PredictedStockOut
		row.Deviation = &dev
		if row.PredictedStockOut > 0 {
			pct := math.Round(row.StockOut / row.PredictedStockOut * 100)
			row.AchievementPercentage = &pct
		}
	}
	if row.OpeningStock > 0 {
		row.TurnoverRatio = round2(row.StockOut / row.OpeningStock * 100)
	}
	if row.StockIn > 0 {
		row.Efficiency = round2(row.StockOut / row.StockIn * 100)
	}
}

// SummarizeComparison agrega las filas predicho vs real. Los días hasta agotar usan el último
// cierre real y la salida real media.
func SummarizeComparison(rows []ComparisonRow) ComparisonSummary {
	var stockOut, predicted, deviation, closing, achievement, turnover, efficiency []float64
	latestClosing := 0.0
	var actualOut []float64
	summary := ComparisonSummary{}
	for _, r := range rows {
		stockOut = append(stockOut, r.StockOut)
		predicted = append(predicted, r.PredictedStockOut)
		closing = append(closing, r.ClosingStock)
		turnover = append(turnover, r.TurnoverRatio)
		efficiency = append(efficiency, r.Efficiency)
		if r.Deviation != nil {
			deviation = append(deviation, *r.Deviation)
		}
		if r.AchievementPercentage != nil {
			achievement = append(achievement, *r.AchievementPercentage)
		}
		if r.HasActual {
			summary.RowsWithActual++
			latestClosing = r.ClosingStock
			actualOut = append(actualOut, r.StockOut)
		}
	}
	summary.StockOut = SummarizeColumn(stockOut)
	summary.PredictedStockOut = SummarizeColumn(predicted)
	summary.Deviation = SummarizeColumn(deviation)
	summary.ClosingStock = SummarizeColumn(closing)
	summary.AvgAchievementPercentage = round2(SummarizeColumn(achievement).Avg)
	summary.AvgTurnoverRatio = round2(SummarizeColumn(turnover).Avg)
	summary.AvgEfficiency = round2(SummarizeColumn(efficiency).Avg)
	summary.DaysUntilEmpty = DaysUntilEmpty(latestClosing, SummarizeColumn(actualOut).Avg)
	return summary
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
