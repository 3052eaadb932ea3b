package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// PlannedDeliveryRepository entregas futuras registradas por los operadores.
type PlannedDeliveryRepository interface {
	Create(ctx context.Context, d *entity.PlannedDelivery) error
	// ListByArea devuelve las entregas del área con llegada en [from, to], ordenadas por fecha.
	ListByArea(ctx context.Context, areaID string, from, to time.Time) ([]entity.PlannedDelivery, error)
}
