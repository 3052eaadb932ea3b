package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appforecast "github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/infrastructure/cache"
	"github.com/jhoicas/Pronostico-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Pronostico-api/internal/interfaces/http"
	"github.com/jhoicas/Pronostico-api/pkg/config"
	"github.com/jhoicas/Pronostico-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("horizon_days", cfg.Forecast.HorizonDays).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	if closer, ok := forecastCache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	areaRepo := postgres.NewPlantAreaRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	masterRepo := postgres.NewMasterDataRepository(pool)
	deliveryRepo := postgres.NewPlannedDeliveryRepository(pool)

	forecastUC := appforecast.NewUseCase(
		areaRepo, ledgerRepo, masterRepo, deliveryRepo,
		forecastCache, forecast.NewEngine(),
		appforecast.SettingsFromConfig(cfg.Forecast), log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs (solo si se generó docs/swagger.json)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Pronóstico de Stock API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Forecast: forecastUC,
		DB:       pool,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
