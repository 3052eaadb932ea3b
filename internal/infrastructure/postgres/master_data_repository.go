package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

var _ repository.MasterDataRepository = (*MasterDataRepo)(nil)

// MasterDataRepo datos maestros por área (tabla plant_master_data).
type MasterDataRepo struct {
	q Querier
}

// NewMasterDataRepository construye el adaptador de datos maestros. Pasar pool o tx (Querier).
func NewMasterDataRepository(q Querier) *MasterDataRepo {
	return &MasterDataRepo{q: q}
}

// List devuelve los datos maestros de todas las áreas. Los NULL quedan en cero y los
// resuelve ResolveParameters con los valores por defecto.
func (r *MasterDataRepo) List(ctx context.Context) ([]entity.PlantMasterData, error) {
	query := `
		SELECT m.area_id, a.name, m.current_stock, m.safety_stock, m.avg_daily_consumption,
		       m.delivery_quantity, COALESCE(m.delivery_frequency_days, 0), m.updated_at
		FROM plant_master_data m
		JOIN plant_areas a ON a.id = m.area_id
		ORDER BY a.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list master data: %w", err)
	}
	defer rows.Close()

	var list []entity.PlantMasterData
	for rows.Next() {
		var (
			m                                   entity.PlantMasterData
			current, safety, consumption, deliv decimal.NullDecimal
		)
		if err := rows.Scan(&m.AreaID, &m.AreaName, &current, &safety, &consumption,
			&deliv, &m.DeliveryFrequencyDays, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan master data: %w", err)
		}
		m.CurrentStock = toFloat(current)
		m.SafetyStock = toFloat(safety)
		m.AvgDailyConsumption = toFloat(consumption)
		m.DeliveryQuantity = toFloat(deliv)
		list = append(list, m)
	}
	return list, rows.Err()
}

// Upsert inserta o actualiza los datos maestros del área.
func (r *MasterDataRepo) Upsert(ctx context.Context, rec *entity.PlantMasterData) error {
	query := `
		INSERT INTO plant_master_data (area_id, current_stock, safety_stock, avg_daily_consumption,
		                               delivery_quantity, delivery_frequency_days, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (area_id)
		DO UPDATE SET current_stock           = EXCLUDED.current_stock,
		              safety_stock            = EXCLUDED.safety_stock,
		              avg_daily_consumption   = EXCLUDED.avg_daily_consumption,
		              delivery_quantity       = EXCLUDED.delivery_quantity,
		              delivery_frequency_days = EXCLUDED.delivery_frequency_days,
		              updated_at              = now()`
	_, err := r.q.Exec(ctx, query, rec.AreaID,
		decimal.NewFromFloat(rec.CurrentStock),
		decimal.NewFromFloat(rec.SafetyStock),
		decimal.NewFromFloat(rec.AvgDailyConsumption),
		decimal.NewFromFloat(rec.DeliveryQuantity),
		rec.DeliveryFrequencyDays,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert master data, área %s: %w", rec.AreaID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert master data: %w", err)
	}
	return nil
}

func toFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	return d.Decimal.InexactFloat64()
}
