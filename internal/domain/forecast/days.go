// Package forecast contiene el motor de pronóstico de stock de la planta: normalización del
// libro histórico, resolución de parámetros, calendario de entregas, proyección diaria,
// promedio móvil de consumo y métricas derivadas.
//
// Todas las funciones son puras: no hacen I/O ni guardan estado entre invocaciones, por lo que
// pueden ejecutarse en paralelo para distintas áreas sin sincronización.
package forecast

import (
	"fmt"
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain"
)

// DayLayout formato de día calendario usado en toda la API (sin hora ni zona).
const DayLayout = "2006-01-02"

// ParseDay interpreta los primeros 10 caracteres de s como día calendario en UTC.
func ParseDay(s string) (time.Time, error) {
	if len(s) < len(DayLayout) {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	t, err := time.ParseInLocation(DayLayout, s[:len(DayLayout)], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q: %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// FormatDay devuelve el día calendario de t (según su propia zona) como YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// CalendarDay trunca t a medianoche UTC conservando año, mes y día de su zona.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays suma n días a un día calendario.
func AddDays(day string, n int) (string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", err
	}
	return FormatDay(t.AddDate(0, 0, n)), nil
}

func dayKey(s string) (string, bool) {
	t, err := ParseDay(s)
	if err != nil {
		return "", false
	}
	return FormatDay(t), true
}
