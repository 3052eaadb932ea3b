package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// StockLedgerRepository acceso al libro diario de stock por área.
type StockLedgerRepository interface {
	// ListRawRecords devuelve los registros del área con día en [from, to], en orden cronológico.
	// Los valores salen tal como los guarda la BD (decimal, time.Time); el normalizador los convierte.
	ListRawRecords(ctx context.Context, areaID string, from, to time.Time) ([]entity.RawStockRecord, error)

	// Upsert inserta o reemplaza el registro de un día del área.
	Upsert(ctx context.Context, areaID string, entry entity.HistoricalStockEntry) error

	// DataVersion identifica el estado actual de los datos que alimentan el pronóstico del área
	// (libro, datos maestros y entregas). Cambia cada vez que alguno se modifica.
	DataVersion(ctx context.Context, areaID string) (string, error)
}
