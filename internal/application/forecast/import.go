package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
	"github.com/jhoicas/Pronostico-api/pkg/logger"
)

// Snapshot exportación del sistema de planta: libro diario crudo y datos maestros por área.
type Snapshot struct {
	Records []entity.RawStockRecord  `json:"records"`
	Masters []entity.PlantMasterData `json:"master_data"`
}

// ImportSummary resultado de una importación.
type ImportSummary struct {
	AreasCreated   int `json:"areas_created"`
	MasterRecords  int `json:"master_records"`
	LedgerRows     int `json:"ledger_rows"`
	SkippedRecords int `json:"skipped_records"` // sin área o sin fecha válida
}

// Importer carga exportaciones en la BD dentro de una única transacción.
type Importer struct {
	txRunner TxRunner
	cache    Cache
	log      *logger.Logger
}

// NewImporter construye el importador.
func NewImporter(txRunner TxRunner, cache Cache, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{txRunner: txRunner, cache: cache, log: log.Component("import")}
}

// Import crea las áreas que falten, reemplaza sus datos maestros y hace upsert del libro día a día.
// Los registros sin área no se pueden asignar y se cuentan como descartados.
func (im *Importer) Import(ctx context.Context, snap Snapshot) (*ImportSummary, error) {
	summary := &ImportSummary{}
	touched := make(map[string]string) // AreaKey -> ID

	err := im.txRunner.Run(ctx, func(
		areaRepo repository.PlantAreaRepository,
		ledgerRepo repository.StockLedgerRepository,
		masterRepo repository.MasterDataRepository,
		_ repository.PlannedDeliveryRepository,
	) error {
		ensureArea := func(name string) (string, error) {
			key := forecast.AreaKey(name)
			if key == "" {
				return "", fmt.Errorf("área sin nombre: %w", domain.ErrInvalidInput)
			}
			if id, ok := touched[key]; ok {
				return id, nil
			}
			name = strings.Join(strings.Fields(name), " ")
			area, err := areaRepo.GetByName(ctx, name)
			if err != nil {
				return "", err
			}
			if area == nil {
				now := time.Now().UTC()
				area = &entity.PlantArea{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
				if err := areaRepo.Create(ctx, area); err != nil {
					return "", err
				}
				summary.AreasCreated++
			}
			touched[key] = area.ID
			return area.ID, nil
		}

		for i := range snap.Masters {
			m := snap.Masters[i]
			id, err := ensureArea(m.AreaName)
			if err != nil {
				return fmt.Errorf("datos maestros #%d: %w", i, err)
			}
			m.AreaID = id
			if err := masterRepo.Upsert(ctx, &m); err != nil {
				return err
			}
			summary.MasterRecords++
		}

		byArea := make(map[string][]entity.RawStockRecord)
		var order []string
		for _, rec := range snap.Records {
			if forecast.AreaKey(rec.Area) == "" {
				summary.SkippedRecords++
				continue
			}
			if _, ok := byArea[rec.Area]; !ok {
				order = append(order, rec.Area)
			}
			byArea[rec.Area] = append(byArea[rec.Area], rec)
		}
		for _, name := range order {
			id, err := ensureArea(name)
			if err != nil {
				return err
			}
			group := byArea[name]
			entries := forecast.NormalizeHistory(group)
			summary.SkippedRecords += len(group) - len(entries)
			for _, e := range entries {
				if err := ledgerRepo.Upsert(ctx, id, e); err != nil {
					return err
				}
				summary.LedgerRows++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, id := range touched {
		if err := im.cache.InvalidateArea(ctx, id); err != nil {
			im.log.Warn().Err(err).Str("area_id", id).Msg("no se pudo invalidar el caché del área")
		}
	}
	im.log.Info().
		Int("areas_created", summary.AreasCreated).
		Int("master_records", summary.MasterRecords).
		Int("ledger_rows", summary.LedgerRows).
		Int("skipped", summary.SkippedRecords).
		Msg("importación completada")
	return summary, nil
}
