package entity

import "time"

// PlantParameters son los tres escalares que describen el estado inicial y la tasa de
// consumo de un área. Derivados de los datos maestros, nunca persistidos directamente.
type PlantParameters struct {
	CurrentStock        float64 `json:"current_stock"`
	SafetyStock         float64 `json:"safety_stock"`
	AvgDailyConsumption float64 `json:"avg_daily_consumption"`
}

// PlantMasterData registro maestro de un área de planta.
// Los valores pueden estar vacíos o ser inválidos; ParameterResolver aplica los defaults.
type PlantMasterData struct {
	AreaID                string    `json:"area_id,omitempty"`
	AreaName              string    `json:"area_name"`
	CurrentStock          float64   `json:"current_stock"`
	SafetyStock           float64   `json:"safety_stock"`
	AvgDailyConsumption   float64   `json:"avg_daily_consumption"`
	DeliveryQuantity      float64   `json:"delivery_quantity"`       // entrega típica
	DeliveryFrequencyDays int       `json:"delivery_frequency_days"` // cada cuántos días llega
	UpdatedAt             time.Time `json:"updated_at,omitempty"`
}
