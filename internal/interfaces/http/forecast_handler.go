package http

import (
	"context"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
)

// ForecastService operaciones de pronóstico que expone la API (lo implementa forecast.UseCase).
type ForecastService interface {
	ListAreas(ctx context.Context) (*dto.PlantAreaListResponse, error)
	GetForecast(ctx context.Context, areaRef string, req dto.ForecastRequest) (*dto.ForecastResponse, error)
	GetCriticalAlerts(ctx context.Context, req dto.ForecastRequest) (*dto.CriticalAlertsResponse, error)
	RegisterDelivery(ctx context.Context, areaRef string, req dto.RegisterDeliveryRequest) (*dto.DeliveryDTO, error)
}

// ForecastHandler maneja las peticiones HTTP del pronóstico de stock.
type ForecastHandler struct {
	svc ForecastService
}

// NewForecastHandler construye el handler.
func NewForecastHandler(svc ForecastService) *ForecastHandler {
	return &ForecastHandler{svc: svc}
}

// ListAreas godoc
// @Summary      Listar áreas de planta
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  dto.PlantAreaListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/forecast/areas [get]
func (h *ForecastHandler) ListAreas(c *fiber.Ctx) error {
	out, err := h.svc.ListAreas(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetForecast godoc
// @Summary      Pronóstico de stock de un área
// @Description  Historia reciente, proyección diaria, fecha crítica, métricas y comparación predicho vs real.
// @Tags         forecast
// @Produce      json
// @Param        area          path   string  true   "ID o nombre del área"
// @Param        horizon_days  query  int     false  "Días a proyectar"  default(30)
// @Param        history_days  query  int     false  "Días de historia"  default(7)
// @Success      200  {object}  dto.ForecastResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/forecast/areas/{area} [get]
func (h *ForecastHandler) GetForecast(c *fiber.Ctx) error {
	area := strings.TrimSpace(c.Params("area"))
	if area == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_AREA", Message: "area es requerida"})
	}
	req, err := parseForecastRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.svc.GetForecast(c.UserContext(), area, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCriticalAlerts godoc
// @Summary      Áreas que cruzan el stock de seguridad
// @Tags         forecast
// @Produce      json
// @Param        horizon_days  query  int  false  "Días a proyectar"  default(30)
// @Success      200  {object}  dto.CriticalAlertsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/forecast/alerts [get]
func (h *ForecastHandler) GetCriticalAlerts(c *fiber.Ctx) error {
	req, err := parseForecastRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.svc.GetCriticalAlerts(c.UserContext(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterDelivery godoc
// @Summary      Registrar entrega planificada
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        area  path  string                       true  "ID o nombre del área"
// @Param        body  body  dto.RegisterDeliveryRequest  true  "Fecha y cantidad"
// @Success      201   {object}  dto.DeliveryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/forecast/areas/{area}/deliveries [post]
func (h *ForecastHandler) RegisterDelivery(c *fiber.Ctx) error {
	var in dto.RegisterDeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ArrivalDate == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arrival_date es requerido"})
	}
	out, err := h.svc.RegisterDelivery(c.UserContext(), c.Params("area"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// parseForecastRequest lee horizon_days e history_days en base 10; ausentes quedan en cero/nil.
func parseForecastRequest(c *fiber.Ctx) (dto.ForecastRequest, error) {
	var req dto.ForecastRequest
	if raw := strings.TrimSpace(c.Query("horizon_days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, "horizon_days debe ser un entero")
		}
		if n == 0 {
			return req, fiber.NewError(fiber.StatusBadRequest, "horizon_days debe ser mayor que cero")
		}
		req.HorizonDays = n
	}
	if raw := strings.TrimSpace(c.Query("history_days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, fiber.NewError(fiber.StatusBadRequest, "history_days debe ser un entero")
		}
		req.HistoryDays = &n
	}
	return req, nil
}
