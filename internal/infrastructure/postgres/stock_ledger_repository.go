package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo libro diario de stock (tabla stock_ledger) sobre PostgreSQL.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// ListRawRecords devuelve los registros del área en [from, to]. Las columnas NUMERIC llegan como
// decimal.Decimal y el día como time.Time; la conversión a float la hace el normalizador.
func (r *StockLedgerRepo) ListRawRecords(ctx context.Context, areaID string, from, to time.Time) ([]entity.RawStockRecord, error) {
	query := `
		SELECT a.name, l.day, l.closing_stock, l.stock_out, l.stock_in
		FROM stock_ledger l
		JOIN plant_areas a ON a.id = l.area_id
		WHERE l.area_id::text = $1 AND l.day BETWEEN $2 AND $3
		ORDER BY l.day`
	rows, err := r.q.Query(ctx, query, areaID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list stock ledger: %w", err)
	}
	defer rows.Close()

	var list []entity.RawStockRecord
	for rows.Next() {
		var (
			area               string
			day                time.Time
			closing, out, into decimal.NullDecimal
		)
		if err := rows.Scan(&area, &day, &closing, &out, &into); err != nil {
			return nil, fmt.Errorf("scan stock ledger: %w", err)
		}
		list = append(list, entity.RawStockRecord{
			Area:         area,
			Date:         day,
			ClosingStock: nullable(closing),
			StockOut:     nullable(out),
			StockIn:      nullable(into),
		})
	}
	return list, rows.Err()
}

// Upsert inserta o reemplaza el registro de un día (clave area_id + day).
func (r *StockLedgerRepo) Upsert(ctx context.Context, areaID string, entry entity.HistoricalStockEntry) error {
	day, err := forecast.ParseDay(entry.Date)
	if err != nil {
		return fmt.Errorf("upsert stock ledger: %w", err)
	}
	query := `
		INSERT INTO stock_ledger (area_id, day, closing_stock, stock_out, stock_in, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (area_id, day)
		DO UPDATE SET closing_stock = EXCLUDED.closing_stock,
		              stock_out     = EXCLUDED.stock_out,
		              stock_in      = EXCLUDED.stock_in,
		              updated_at    = now()`
	_, err = r.q.Exec(ctx, query, areaID, day,
		decimal.NewFromFloat(entry.StockLevel),
		decimal.NewFromFloat(entry.Consumption),
		decimal.NewFromFloat(entry.Arrivals),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert stock ledger, área %s: %w", areaID, domain.ErrNotFound)
		}
		return fmt.Errorf("upsert stock ledger: %w", err)
	}
	return nil
}

// DataVersion combina la última modificación y el número de filas de las tres tablas que
// alimentan el pronóstico del área.
func (r *StockLedgerRepo) DataVersion(ctx context.Context, areaID string) (string, error) {
	query := `
		SELECT
		    COALESCE(GREATEST(
		        (SELECT max(updated_at) FROM stock_ledger       WHERE area_id::text = $1),
		        (SELECT max(updated_at) FROM plant_master_data  WHERE area_id::text = $1),
		        (SELECT max(created_at) FROM planned_deliveries WHERE area_id::text = $1)
		    ), 'epoch'::timestamptz),
		    (SELECT count(*) FROM stock_ledger       WHERE area_id::text = $1)
		  + (SELECT count(*) FROM planned_deliveries WHERE area_id::text = $1)`
	var (
		last  time.Time
		count int64
	)
	if err := r.q.QueryRow(ctx, query, areaID).Scan(&last, &count); err != nil {
		return "", fmt.Errorf("data version: %w", err)
	}
	return strconv.FormatInt(last.UnixMicro(), 36) + "-" + strconv.FormatInt(count, 36), nil
}

// nullable devuelve nil para NULL y el decimal en otro caso (ambos los acepta CoerceQuantity).
func nullable(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal
}
