package forecast_test

import (
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers compartidos por los tests del motor
// ──────────────────────────────────────────────────────────────────────────────

const testToday = "2026-03-10"

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	}
}

func testEngine() *forecast.Engine {
	return forecast.NewEngineWithClock(fixedClock())
}

func day(offset int) string {
	d, err := forecast.AddDays(testToday, offset)
	if err != nil {
		panic(err)
	}
	return d
}

// scenarioHistory 7 días de libro que bajan de 150 a 85 con salidas 10,12,8,15,11,9,13.
func scenarioHistory() []entity.HistoricalStockEntry {
	closings := []float64{150, 138, 130, 115, 104, 95, 85}
	outs := []float64{10, 12, 8, 15, 11, 9, 13}
	entries := make([]entity.HistoricalStockEntry, 0, len(closings))
	for i := range closings {
		entries = append(entries, entity.HistoricalStockEntry{
			Date:        day(i - 7),
			StockLevel:  closings[i],
			Consumption: outs[i],
		})
	}
	return entries
}

func scenarioParams() entity.PlantParameters {
	return entity.PlantParameters{CurrentStock: 85, SafetyStock: 40, AvgDailyConsumption: 11}
}

// toRawRecords devuelve entradas normalizadas como registros crudos sin área.
func toRawRecords(entries []entity.HistoricalStockEntry) []entity.RawStockRecord {
	out := make([]entity.RawStockRecord, 0, len(entries))
	for _, e := range entries {
		out = append(out, entity.RawStockRecord{
			Date:         e.Date,
			ClosingStock: e.StockLevel,
			StockOut:     e.Consumption,
			StockIn:      e.Arrivals,
		})
	}
	return out
}
