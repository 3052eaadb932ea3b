package dto

import (
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

// ForecastRequest parámetros de consulta de un pronóstico.
// Cero en HorizonDays o nil en HistoryDays toman los valores configurados.
type ForecastRequest struct {
	HorizonDays int  `query:"horizon_days"`
	HistoryDays *int `query:"history_days"`
}

// ParametersDTO parámetros de planta usados en la proyección.
type ParametersDTO struct {
	CurrentStock        float64 `json:"current_stock"`
	SafetyStock         float64 `json:"safety_stock"`
	AvgDailyConsumption float64 `json:"avg_daily_consumption"`
}

// DailyProjectionDTO una fila de la serie (historia, hoy o proyección).
type DailyProjectionDTO struct {
	Date        string  `json:"date"`
	StockLevel  float64 `json:"stock_level"`
	Consumption float64 `json:"consumption"`
	Arrivals    float64 `json:"arrivals"`
	IsActual    bool    `json:"is_actual"`
	Synthesized bool    `json:"synthesized,omitempty"` // día sin registro en el libro
}

// MetricsDTO indicadores agregados.
// DaysUntilEmpty es null cuando el consumo es cero (sin límite); DaysUntilEmptyUnbounded lo explicita.
type MetricsDTO struct {
	DaysUntilEmpty            *float64 `json:"days_until_empty"`
	DaysUntilEmptyUnbounded   bool     `json:"days_until_empty_unbounded"`
	AvgProjectedStock         float64  `json:"avg_projected_stock"`
	TotalProjectedConsumption float64  `json:"total_projected_consumption"`
	TotalProjectedArrivals    float64  `json:"total_projected_arrivals"`
	StockTurnoverRate         float64  `json:"stock_turnover_rate"`
	IsStockCritical           bool     `json:"is_stock_critical"`
	ProjectionAccuracy        float64  `json:"projection_accuracy"`
}

// ComparisonSummaryDTO agregados de predicho vs real.
// DaysUntilEmpty sigue la misma convención que MetricsDTO.
type ComparisonSummaryDTO struct {
	StockOut                 forecast.ColumnStats `json:"stock_out"`
	PredictedStockOut        forecast.ColumnStats `json:"predicted_stock_out"`
	Deviation                forecast.ColumnStats `json:"deviation"`
	ClosingStock             forecast.ColumnStats `json:"closing_stock"`
	AvgAchievementPercentage float64              `json:"avg_achievement_percentage"`
	AvgTurnoverRatio         float64              `json:"avg_turnover_ratio"`
	AvgEfficiency            float64              `json:"avg_efficiency"`
	DaysUntilEmpty           *float64             `json:"days_until_empty"`
	DaysUntilEmptyUnbounded  bool                 `json:"days_until_empty_unbounded"`
	RowsWithActual           int                  `json:"rows_with_actual"`
}

// DeliveryDTO entrega considerada en la proyección.
type DeliveryDTO struct {
	ID          string    `json:"id,omitempty"`
	ArrivalDate string    `json:"arrival_date"`
	Quantity    float64   `json:"quantity"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// ForecastResponse respuesta de GET /api/forecast/areas/:area.
type ForecastResponse struct {
	AreaID            string                   `json:"area_id"`
	AreaName          string                   `json:"area_name"`
	Today             string                   `json:"today"`
	HorizonDays       int                      `json:"horizon_days"`
	HistoryDays       int                      `json:"history_days"`
	Parameters        ParametersDTO            `json:"parameters"`
	PrognosisData     []DailyProjectionDTO     `json:"prognosis_data"`
	CriticalStockDate *string                  `json:"critical_stock_date"`
	Deliveries        []DeliveryDTO            `json:"deliveries"`
	Metrics           MetricsDTO               `json:"metrics"`
	Comparison        []forecast.ComparisonRow `json:"comparison"`
	ComparisonSummary ComparisonSummaryDTO     `json:"comparison_summary"`
	GeneratedAt       time.Time                `json:"generated_at"`
	Cached            bool                     `json:"cached"`
}

// CriticalAlertDTO un área cuyo stock proyectado cruza el de seguridad dentro del horizonte.
type CriticalAlertDTO struct {
	AreaID              string   `json:"area_id"`
	AreaName            string   `json:"area_name"`
	CriticalStockDate   string   `json:"critical_stock_date"`
	DaysUntilCritical   int      `json:"days_until_critical"`
	CurrentStock        float64  `json:"current_stock"`
	SafetyStock         float64  `json:"safety_stock"`
	AvgDailyConsumption float64  `json:"avg_daily_consumption"`
	DaysUntilEmpty      *float64 `json:"days_until_empty"`
}

// CriticalAlertsResponse respuesta de GET /api/forecast/alerts.
type CriticalAlertsResponse struct {
	Today       string             `json:"today"`
	HorizonDays int                `json:"horizon_days"`
	Items       []CriticalAlertDTO `json:"items"`
}

// RegisterDeliveryRequest entrada para registrar una entrega planificada.
type RegisterDeliveryRequest struct {
	ArrivalDate string  `json:"arrival_date" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
}
