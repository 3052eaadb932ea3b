package forecast

import (
	"context"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

// CacheKey identifica un pronóstico calculado. DataVersion cambia con cualquier modificación del
// libro, los datos maestros o las entregas del área, así que una clave vieja nunca se reutiliza.
type CacheKey struct {
	AreaID      string
	Today       string
	HorizonDays int
	HistoryDays int
	DataVersion string
}

// Cache guarda respuestas de pronóstico ya calculadas. Los errores del caché nunca hacen fallar
// una consulta: el caso de uso los registra y recalcula.
type Cache interface {
	Get(ctx context.Context, key CacheKey) (*dto.ForecastResponse, bool, error)
	Set(ctx context.Context, key CacheKey, resp *dto.ForecastResponse) error
	InvalidateArea(ctx context.Context, areaID string) error
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// La importación de exportaciones la usa para que un archivo se cargue completo o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		areaRepo repository.PlantAreaRepository,
		ledgerRepo repository.StockLedgerRepository,
		masterRepo repository.MasterDataRepository,
		deliveryRepo repository.PlannedDeliveryRepository,
	) error) error
}
