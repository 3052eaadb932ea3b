package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/Pronostico-api/pkg/logger"
)

func main() {
	// .env es opcional; config.Load también lo lee para el comando import.
	_ = godotenv.Load(".env")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "forecast",
		Usage: "Pronóstico de stock de planta desde archivos o carga de exportaciones en la BD",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Nivel de log (trace, debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Calcula el pronóstico de un área a partir de exportaciones JSON (sin BD)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "records", Usage: "JSON con el libro diario crudo", Required: true},
					&cli.StringFlag{Name: "master", Usage: "JSON con los datos maestros por área"},
					&cli.StringFlag{Name: "deliveries", Usage: "JSON con entregas planificadas"},
					&cli.StringFlag{Name: "area", Usage: "Nombre del área", Required: true},
					&cli.IntFlag{Name: "horizon", Usage: "Días a proyectar", Value: 30, EnvVars: []string{"FORECAST_HORIZON_DAYS"}},
					&cli.IntFlag{Name: "history", Usage: "Días de historia", Value: 7, EnvVars: []string{"FORECAST_HISTORY_DAYS"}},
					&cli.StringFlag{Name: "today", Usage: "Fija el día actual (YYYY-MM-DD)"},
					&cli.BoolFlag{Name: "no-schedule", Usage: "No generar entregas desde la frecuencia típica"},
				},
				Action: runForecast,
			},
			{
				Name:  "import",
				Usage: "Carga un snapshot (libro + datos maestros) en PostgreSQL",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "snapshot", Usage: "JSON con {records, master_data}"},
					&cli.StringFlag{Name: "records", Usage: "JSON con el libro diario crudo"},
					&cli.StringFlag{Name: "master", Usage: "JSON con los datos maestros por área"},
				},
				Action: runImport,
			},
		},
	}
}

func newLogger(c *cli.Context) *logger.Logger {
	return logger.New(logger.Config{
		Env:    "production",
		Level:  c.String("log-level"),
		Output: os.Stderr,
	})
}
