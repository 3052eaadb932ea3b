package entity

import "time"

// Origen de una entrega planificada.
const (
	DeliverySourcePlanned   = "planned"   // registrada por un operador
	DeliverySourceGenerated = "generated" // derivada de la frecuencia típica del área
)

// PlannedDelivery representa un ingreso futuro esperado; puede o no materializarse.
type PlannedDelivery struct {
	ID          string    `json:"id,omitempty"`
	AreaID      string    `json:"area_id,omitempty"`
	ArrivalDate string    `json:"arrival_date"` // YYYY-MM-DD
	Quantity    float64   `json:"quantity"`
	Source      string    `json:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}
