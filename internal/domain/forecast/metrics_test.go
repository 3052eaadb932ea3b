package forecast_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

func TestAggregateMetrics_ProyeccionSimple(t *testing.T) {
	params := entity.PlantParameters{CurrentStock: 100, SafetyStock: 55, AvgDailyConsumption: 10}
	res, err := testEngine().Predict(nil, nil, params, 5, 0)
	require.NoError(t, err)

	m := forecast.AggregateMetrics(res, params)

	assert.Equal(t, 10.0, m.DaysUntilEmpty)
	assert.Equal(t, 70.0, m.AvgProjectedStock)
	assert.Equal(t, 50.0, m.TotalProjectedConsumption)
	assert.Equal(t, 0.0, m.TotalProjectedArrivals)
	assert.Equal(t, 50.0, m.StockTurnoverRate)
	assert.True(t, m.IsStockCritical, "50 < 55 en el quinto día")
	assert.Equal(t, 0.0, m.ProjectionAccuracy, "sin historia no hay precisión")
}

// Escenario C: consumo cero deja los días hasta agotar sin límite.
func TestAggregateMetrics_EscenarioC_ConsumoCero(t *testing.T) {
	params := entity.PlantParameters{CurrentStock: 100, SafetyStock: 10, AvgDailyConsumption: 0}
	res, err := testEngine().Predict(nil, nil, params, 10, 0)
	require.NoError(t, err)

	m := forecast.AggregateMetrics(res, params)

	assert.True(t, math.IsInf(m.DaysUntilEmpty, 1))
	assert.False(t, m.IsStockCritical)
	assert.Equal(t, 100.0, m.AvgProjectedStock)
	assert.Equal(t, 0.0, m.StockTurnoverRate)
}

func TestAggregateMetrics_PrecisionContraHistoria(t *testing.T) {
	history := []entity.HistoricalStockEntry{
		{Date: day(-2), StockLevel: 120, Consumption: 10},
		{Date: day(-1), StockLevel: 110, Consumption: 20},
	}
	params := entity.PlantParameters{CurrentStock: 100, SafetyStock: 10, AvgDailyConsumption: 10}
	res, err := testEngine().Predict(history, nil, params, 3, 3)
	require.NoError(t, err)

	m := forecast.AggregateMetrics(res, params)

	assert.Equal(t, 75.0, m.ProjectionAccuracy, "errores 0% y 50%; el día sintético no cuenta")
}

func TestAggregateMetrics_ConEntregas(t *testing.T) {
	params := entity.PlantParameters{CurrentStock: 40, SafetyStock: 5, AvgDailyConsumption: 10}
	deliveries := forecast.GenerateDeliverySchedule(testToday, 4, 15, 2)
	res, err := testEngine().Predict(nil, deliveries, params, 4, 0)
	require.NoError(t, err)

	m := forecast.AggregateMetrics(res, params)

	assert.Equal(t, 30.0, m.TotalProjectedArrivals)
	assert.Equal(t, 40.0, m.TotalProjectedConsumption)
	assert.Equal(t, 4.0, m.DaysUntilEmpty)
}

func TestDaysUntilEmpty(t *testing.T) {
	assert.Equal(t, 5.0, forecast.DaysUntilEmpty(50, 10))
	assert.Equal(t, 0.0, forecast.DaysUntilEmpty(-3, 10))
	assert.True(t, math.IsInf(forecast.DaysUntilEmpty(50, 0), 1))
	assert.True(t, math.IsInf(forecast.DaysUntilEmpty(50, math.NaN()), 1))
}

func TestSummarizeColumn(t *testing.T) {
	st := forecast.SummarizeColumn([]float64{4, math.NaN(), 10, math.Inf(1), 1})

	assert.Equal(t, forecast.ColumnStats{Min: 1, Avg: 5, Max: 10, Sum: 15, Count: 3}, st)
	assert.Equal(t, forecast.ColumnStats{}, forecast.SummarizeColumn(nil))
}

func TestSummarizeComparison(t *testing.T) {
	dev := -2.0
	pct := 80.0
	rows := []forecast.ComparisonRow{
		{Date: "2026-03-08", HasActual: true, StockOut: 8, PredictedStockOut: 10, ClosingStock: 90,
			Deviation: &dev, AchievementPercentage: &pct, TurnoverRatio: 8, Efficiency: 0},
		{Date: "2026-03-09", HasActual: true, StockOut: 12, PredictedStockOut: 10, ClosingStock: 78,
			TurnoverRatio: 12, Efficiency: 50},
		{Date: "2026-03-10", StockOut: 10, PredictedStockOut: 10, ClosingStock: 68},
	}

	s := forecast.SummarizeComparison(rows)

	assert.Equal(t, 2, s.RowsWithActual)
	assert.Equal(t, 30.0, s.StockOut.Sum)
	assert.Equal(t, 1, s.Deviation.Count)
	assert.Equal(t, 80.0, s.AvgAchievementPercentage)
	assert.Equal(t, 6.67, s.AvgTurnoverRatio)
	assert.Equal(t, 16.67, s.AvgEfficiency)
	assert.Equal(t, 7.8, s.DaysUntilEmpty, "último cierre real 78 / salida real media 10")
}
