package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	appforecast "github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/pkg/config"
)

func runForecast(c *cli.Context) error {
	log := newLogger(c)

	records, err := readJSONFile[[]entity.RawStockRecord](c.String("records"))
	if err != nil {
		return err
	}
	masters, err := readJSONFile[[]entity.PlantMasterData](c.String("master"))
	if err != nil {
		return err
	}
	planned, err := readJSONFile[[]entity.PlannedDelivery](c.String("deliveries"))
	if err != nil {
		return err
	}

	engine, err := engineFor(c.String("today"))
	if err != nil {
		return err
	}

	settings := appforecast.DefaultSettings()
	if cfg, err := config.Load(); err == nil {
		settings = appforecast.SettingsFromConfig(cfg.Forecast)
	} else {
		log.Warn().Err(err).Msg("configuración inválida, se usan valores por defecto")
	}

	resp, err := appforecast.Build(engine, appforecast.Input{
		AreaName:         c.String("area"),
		Records:          records,
		Masters:          masters,
		Planned:          planned,
		HorizonDays:      c.Int("horizon"),
		HistoryDays:      c.Int("history"),
		GenerateSchedule: settings.GenerateSchedule && !c.Bool("no-schedule"),
		Resolver:         settings.Resolver,
	})
	if err != nil {
		return fmt.Errorf("pronóstico: %w", err)
	}

	log.Info().
		Str("area", resp.AreaName).
		Int("rows", len(resp.PrognosisData)).
		Msg("pronóstico calculado")

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// engineFor devuelve un motor anclado al día indicado, o al reloj real si está vacío.
func engineFor(today string) (*forecast.Engine, error) {
	if today == "" {
		return forecast.NewEngine(), nil
	}
	t, err := forecast.ParseDay(today)
	if err != nil {
		return nil, fmt.Errorf("--today %q: %w", today, err)
	}
	return forecast.NewEngineWithClock(func() time.Time { return t }), nil
}

// readJSONFile decodifica path en T; una ruta vacía devuelve el valor cero.
func readJSONFile[T any](path string) (T, error) {
	var out T
	if path == "" {
		return out, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return out, fmt.Errorf("leer %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decodificar %s: %w", path, err)
	}
	return out, nil
}
