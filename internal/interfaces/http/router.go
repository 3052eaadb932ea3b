package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
)

// HealthChecker comprueba la conexión a la BD (lo cumple *pgxpool.Pool).
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Forecast ForecastService
	DB       HealthChecker // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", healthHandler(deps.DB))

	api := app.Group("/api")

	forecastGroup := api.Group("/forecast")
	h := NewForecastHandler(deps.Forecast)
	forecastGroup.Get("/areas", h.ListAreas)
	forecastGroup.Get("/areas/:area", h.GetForecast)
	forecastGroup.Post("/areas/:area/deliveries", h.RegisterDelivery)
	forecastGroup.Get("/alerts", h.GetCriticalAlerts)
}

// healthHandler godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Failure      503  {object}  dto.HealthResponse
// @Router       /health [get]
func healthHandler(db HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return c.JSON(dto.HealthResponse{Status: "ok"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "degraded", Database: "down"})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Database: "up"})
	}
}
