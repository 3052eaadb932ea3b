package dto

import "time"

// PlantAreaResponse salida de un área de planta.
type PlantAreaResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PlantAreaListResponse lista de áreas.
type PlantAreaListResponse struct {
	Items []PlantAreaResponse `json:"items"`
	Total int                 `json:"total"`
}
