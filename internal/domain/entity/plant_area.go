package entity

import "time"

// PlantArea representa un área de la planta empacadora con inventario propio
// (cámara, línea, bodega de insumos).
type PlantArea struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
