package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	appforecast "github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/infrastructure/cache"
	"github.com/jhoicas/Pronostico-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Pronostico-api/pkg/config"
)

func runImport(c *cli.Context) error {
	snap, err := loadSnapshot(c.String("snapshot"), c.String("records"), c.String("master"))
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := newLogger(c)

	pool, err := postgres.NewPool(c.Context, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		return err
	}
	if closer, ok := forecastCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	importer := appforecast.NewImporter(postgres.NewTxRunner(pool), forecastCache, log)
	summary, err := importer.Import(c.Context, snap)
	if err != nil {
		return fmt.Errorf("importar: %w", err)
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// loadSnapshot lee un snapshot completo o lo arma desde archivos sueltos de libro y maestros.
func loadSnapshot(snapshotPath, recordsPath, masterPath string) (appforecast.Snapshot, error) {
	if snapshotPath != "" {
		return readJSONFile[appforecast.Snapshot](snapshotPath)
	}
	if recordsPath == "" && masterPath == "" {
		return appforecast.Snapshot{}, errors.New("indique --snapshot o --records/--master")
	}
	records, err := readJSONFile[[]entity.RawStockRecord](recordsPath)
	if err != nil {
		return appforecast.Snapshot{}, err
	}
	masters, err := readJSONFile[[]entity.PlantMasterData](masterPath)
	if err != nil {
		return appforecast.Snapshot{}, err
	}
	return appforecast.Snapshot{Records: records, Masters: masters}, nil
}
