package forecast

import (
	"math"
	"sort"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// ComparisonRow fila "predicho vs real" de un día: valores del libro cuando existen,
// consumo estimado por promedio móvil y métricas por fila.
type ComparisonRow struct {
	Date                  string   `json:"date"`
	IsActual              bool     `json:"is_actual"`
	HasActual             bool     `json:"has_actual"` // hay registro real en el libro
	OpeningStock          float64  `json:"opening_stock"`
	StockIn               float64  `json:"stock_in"`
	StockOut              float64  `json:"stock_out"`
	ClosingStock          float64  `json:"closing_stock"`
	PredictedStockOut     float64  `json:"predicted_stock_out"`
	Deviation             *float64 `json:"deviation"`
	AchievementPercentage *float64 `json:"achievement_percentage"`
	TurnoverRatio         float64  `json:"turnover_ratio"`
	Efficiency            float64  `json:"efficiency"`
}

// EstimateMovingAverage estima el consumo de date con una ventana móvil que termina ese día.
// Prioridad:
//  1. salidas reales (>0) del área dentro de la ventana, si hay al menos MinMovingAverageSamples días;
//  2. PredictedStockOut de las filas ya calculadas dentro de la ventana y anteriores a date;
//  3. max(0, fallback).
//
// Los promedios se redondean al entero más cercano. area vacío no filtra.
func EstimateMovingAverage(
	raw []entity.RawStockRecord,
	partial []ComparisonRow,
	date, area string,
	fallback float64,
	cfg ResolverConfig,
) float64 {
	if area != "" {
		raw = FilterByArea(raw, area)
	}
	return estimateMovingAverage(raw, partial, date, fallback, cfg.withDefaults())
}

func estimateMovingAverage(
	raw []entity.RawStockRecord,
	partial []ComparisonRow,
	date string,
	fallback float64,
	cfg ResolverConfig,
) float64 {
	end, err := ParseDay(date)
	if err != nil {
		return nonNegative(fallback)
	}
	start := end.AddDate(0, 0, -(cfg.MovingAverageWindowDays - 1))

	// Un valor por día; entre duplicados gana la última salida positiva.
	perDay := make(map[string]float64)
	for _, rec := range raw {
		day, ok := normalizeDate(rec.Date)
		if !ok {
			continue
		}
		t, _ := ParseDay(day)
		if t.Before(start) || t.After(end) {
			continue
		}
		if out := CoerceQuantity(rec.StockOut); out > 0 {
			perDay[day] = out
		}
	}
	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)
	actual := make([]float64, 0, len(days))
	for _, day := range days {
		actual = append(actual, perDay[day])
	}
	if len(actual) >= cfg.MinMovingAverageSamples {
		return math.Round(mean(actual))
	}

	predicted := make([]float64, 0, cfg.MovingAverageWindowDays)
	for _, row := range partial {
		t, err := ParseDay(row.Date)
		if err != nil || t.Before(start) || !t.Before(end) {
			continue
		}
		if isFinite(row.PredictedStockOut) {
			predicted = append(predicted, row.PredictedStockOut)
		}
	}
	if len(predicted) >= cfg.MinMovingAverageSamples {
		return math.Round(mean(predicted))
	}

	return nonNegative(fallback)
}

// BuildComparison recorre la proyección en orden y arma las filas predicho vs real del área.
// Cada estimación usa solo las filas ya producidas, de modo que los primeros días se
// apoyan en fallback hasta acumular muestras.
func BuildComparison(
	raw []entity.RawStockRecord,
	prediction entity.PredictionResult,
	area string,
	fallback float64,
	cfg ResolverConfig,
) []ComparisonRow {
	cfg = cfg.withDefaults()
	areaRaw := raw
	if area != "" {
		areaRaw = FilterByArea(raw, area)
	}
	actualByDay := make(map[string]entity.HistoricalStockEntry)
	for _, e := range NormalizeHistory(areaRaw) {
		actualByDay[e.Date] = e
	}

	rows := make([]ComparisonRow, 0, len(prediction.PrognosisData))
	for i, p := range prediction.PrognosisData {
		row := ComparisonRow{
			Date:              p.Date,
			IsActual:          p.IsActual,
			StockIn:           p.Arrivals,
			StockOut:          p.Consumption,
			ClosingStock:      p.StockLevel,
			PredictedStockOut: estimateMovingAverage(areaRaw, rows, p.Date, fallback, cfg),
		}
		if a, ok := actualByDay[p.Date]; ok {
			row.HasActual = true
			row.StockIn = a.Arrivals
			row.StockOut = a.Consumption
			row.ClosingStock = a.StockLevel
		}
		if i == 0 {
			row.OpeningStock = math.Max(0, row.ClosingStock+row.StockOut-row.StockIn)
		} else {
			row.OpeningStock = rows[i-1].ClosingStock
		}
		applyRowMetrics(&row)
		rows = append(rows, row)
	}
	return rows
}

// FilterByArea conserva los registros del área; los registros sin área (exportaciones de un
// solo área) se consideran propios.
func FilterByArea(raw []entity.RawStockRecord, area string) []entity.RawStockRecord {
	key := AreaKey(area)
	out := make([]entity.RawStockRecord, 0, len(raw))
	for _, rec := range raw {
		if rec.Area == "" || AreaKey(rec.Area) == key {
			out = append(out, rec)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
