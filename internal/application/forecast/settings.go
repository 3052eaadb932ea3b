package forecast

import (
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/pkg/config"
)

// Settings política del caso de uso; cmd la arma desde pkg/config.
type Settings struct {
	HorizonDays      int
	HistoryDays      int
	MaxHorizonDays   int
	MaxHistoryDays   int
	GenerateSchedule bool
	Parallelism      int
	Resolver         forecast.ResolverConfig
}

const (
	defaultMaxDays     = 365
	defaultParallelism = 4
)

// DefaultSettings horizonte de 30 días, 7 de historia y calendario generado activo.
func DefaultSettings() Settings {
	return Settings{
		HorizonDays:      30,
		HistoryDays:      7,
		MaxHorizonDays:   defaultMaxDays,
		MaxHistoryDays:   defaultMaxDays,
		GenerateSchedule: true,
		Parallelism:      defaultParallelism,
		Resolver:         forecast.DefaultResolverConfig(),
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.HorizonDays <= 0 {
		s.HorizonDays = d.HorizonDays
	}
	if s.HistoryDays < 0 {
		s.HistoryDays = d.HistoryDays
	}
	if s.MaxHorizonDays <= 0 {
		s.MaxHorizonDays = d.MaxHorizonDays
	}
	if s.MaxHistoryDays <= 0 {
		s.MaxHistoryDays = d.MaxHistoryDays
	}
	if s.Parallelism <= 0 {
		s.Parallelism = d.Parallelism
	}
	return s
}

// SettingsFromConfig traduce la sección FORECAST_* de la configuración.
func SettingsFromConfig(cfg config.ForecastConfig) Settings {
	return Settings{
		HorizonDays:      cfg.HorizonDays,
		HistoryDays:      cfg.HistoryDays,
		MaxHorizonDays:   cfg.MaxHorizonDays,
		MaxHistoryDays:   cfg.MaxHistoryDays,
		GenerateSchedule: cfg.GenerateSchedule,
		Parallelism:      cfg.Parallelism,
		Resolver: forecast.ResolverConfig{
			DefaultCurrentStock:        cfg.DefaultCurrentStock,
			DefaultSafetyStock:         cfg.DefaultSafetyStock,
			DefaultAvgDailyConsumption: cfg.DefaultAvgConsumption,
			MinMovingAverageSamples:    cfg.MinMovingAverageSamples,
			MovingAverageWindowDays:    cfg.MovingAverageWindowDays,
		},
	}.withDefaults()
}
