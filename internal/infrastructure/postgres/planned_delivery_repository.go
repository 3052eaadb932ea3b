package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

var _ repository.PlannedDeliveryRepository = (*PlannedDeliveryRepo)(nil)

// PlannedDeliveryRepo entregas planificadas (tabla planned_deliveries).
type PlannedDeliveryRepo struct {
	q Querier
}

// NewPlannedDeliveryRepository construye el adaptador de entregas. Pasar pool o tx (Querier).
func NewPlannedDeliveryRepository(q Querier) *PlannedDeliveryRepo {
	return &PlannedDeliveryRepo{q: q}
}

// Create persiste una entrega planificada.
func (r *PlannedDeliveryRepo) Create(ctx context.Context, d *entity.PlannedDelivery) error {
	arrival, err := forecast.ParseDay(d.ArrivalDate)
	if err != nil {
		return fmt.Errorf("insert planned delivery: %w", err)
	}
	query := `
		INSERT INTO planned_deliveries (id, area_id, arrival_date, quantity, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.q.Exec(ctx, query,
		d.ID, d.AreaID, arrival, decimal.NewFromFloat(d.Quantity), d.Source, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert planned delivery %s: %w", d.ID, domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert planned delivery, área %s: %w", d.AreaID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert planned delivery: %w", err)
	}
	return nil
}

// ListByArea devuelve las entregas del área con llegada en [from, to].
func (r *PlannedDeliveryRepo) ListByArea(ctx context.Context, areaID string, from, to time.Time) ([]entity.PlannedDelivery, error) {
	query := `
		SELECT id, area_id, arrival_date, quantity, source, created_at
		FROM planned_deliveries
		WHERE area_id::text = $1 AND arrival_date BETWEEN $2 AND $3
		ORDER BY arrival_date, created_at`
	rows, err := r.q.Query(ctx, query, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list planned deliveries: %w", err)
	}
	defer rows.Close()

	var list []entity.PlannedDelivery
	for rows.Next() {
		var (
			d       entity.PlannedDelivery
			arrival time.Time
			qty     decimal.Decimal
		)
		if err := rows.Scan(&d.ID, &d.AreaID, &arrival, &qty, &d.Source, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan planned delivery: %w", err)
		}
		d.ArrivalDate = forecast.FormatDay(arrival)
		d.Quantity = qty.InexactFloat64()
		list = append(list, d)
	}
	return list, rows.Err()
}
