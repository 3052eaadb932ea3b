package forecast

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// NormalizeHistory convierte registros crudos del libro de stock en la serie diaria canónica.
// Los registros sin fecha válida se descartan; los numéricos inválidos quedan en cero.
// El orden de salida sigue al de entrada y no está garantizado como cronológico.
func NormalizeHistory(records []entity.RawStockRecord) []entity.HistoricalStockEntry {
	out := make([]entity.HistoricalStockEntry, 0, len(records))
	for _, rec := range records {
		day, ok := normalizeDate(rec.Date)
		if !ok {
			continue
		}
		out = append(out, entity.HistoricalStockEntry{
			Date:        day,
			StockLevel:  CoerceQuantity(rec.ClosingStock),
			Consumption: CoerceQuantity(rec.StockOut),
			Arrivals:    CoerceQuantity(rec.StockIn),
		})
	}
	return out
}

// CoerceQuantity es la única regla de conversión de cantidades crudas:
// string (con espacios), enteros, flotantes, json.Number y decimal.Decimal se aceptan;
// bool, nil, errores de parseo, NaN, ±Inf y negativos devuelven 0.
func CoerceQuantity(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil, bool:
		return 0
	case decimal.Decimal:
		f = x.InexactFloat64()
	case *decimal.Decimal:
		if x == nil {
			return 0
		}
		f = x.InexactFloat64()
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := cast.ToFloat64E(s)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if !isFinite(f) || f < 0 {
		return 0
	}
	return f
}

// normalizeDate acepta strings de al menos 10 caracteres con día calendario al inicio
// (p.ej. "2026-03-01" o "2026-03-01T00:00:00Z") y time.Time de columnas DATE.
func normalizeDate(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return dayKey(strings.TrimSpace(x))
	case time.Time:
		if x.IsZero() {
			return "", false
		}
		return FormatDay(x), true
	case *time.Time:
		if x == nil || x.IsZero() {
			return "", false
		}
		return FormatDay(*x), true
	default:
		return "", false
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func nonNegative(f float64) float64 {
	if !isFinite(f) || f < 0 {
		return 0
	}
	return f
}
