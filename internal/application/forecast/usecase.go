package forecast

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
	"github.com/jhoicas/Pronostico-api/pkg/logger"
)

// UseCase orquesta el pronóstico de stock por área: carga datos desde los repos, ejecuta el
// motor y guarda el resultado en caché.
type UseCase struct {
	areaRepo     repository.PlantAreaRepository
	ledgerRepo   repository.StockLedgerRepository
	masterRepo   repository.MasterDataRepository
	deliveryRepo repository.PlannedDeliveryRepository
	cache        Cache
	engine       *forecast.Engine
	settings     Settings
	log          *logger.Logger
}

// NewUseCase construye el caso de uso de pronóstico.
func NewUseCase(
	areaRepo repository.PlantAreaRepository,
	ledgerRepo repository.StockLedgerRepository,
	masterRepo repository.MasterDataRepository,
	deliveryRepo repository.PlannedDeliveryRepository,
	cache Cache,
	engine *forecast.Engine,
	settings Settings,
	log *logger.Logger,
) *UseCase {
	if engine == nil {
		engine = forecast.NewEngine()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		areaRepo:     areaRepo,
		ledgerRepo:   ledgerRepo,
		masterRepo:   masterRepo,
		deliveryRepo: deliveryRepo,
		cache:        cache,
		engine:       engine,
		settings:     settings.withDefaults(),
		log:          log.Component("forecast"),
	}
}

// ListAreas devuelve las áreas de la planta ordenadas por nombre.
func (uc *UseCase) ListAreas(ctx context.Context) (*dto.PlantAreaListResponse, error) {
	areas, err := uc.areaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlantAreaResponse, 0, len(areas))
	for _, a := range areas {
		items = append(items, dto.PlantAreaResponse{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		})
	}
	return &dto.PlantAreaListResponse{Items: items, Total: len(items)}, nil
}

// GetForecast devuelve el pronóstico de un área identificada por ID o por nombre.
// Errores: domain.ErrNotFound (área), domain.ErrInvalidInput (horizonte/historia fuera de rango),
// domain.ErrInvalidParameters (el motor rechazó los parámetros).
func (uc *UseCase) GetForecast(ctx context.Context, areaRef string, req dto.ForecastRequest) (*dto.ForecastResponse, error) {
	horizon, history, err := uc.bounds(req)
	if err != nil {
		return nil, err
	}
	area, err := uc.findArea(ctx, areaRef)
	if err != nil {
		return nil, err
	}
	return uc.forecastArea(ctx, area, horizon, history)
}

// forecastArea consulta el caché y, si no hay entrada vigente, calcula y guarda.
func (uc *UseCase) forecastArea(ctx context.Context, area *entity.PlantArea, horizon, history int) (*dto.ForecastResponse, error) {
	version, err := uc.ledgerRepo.DataVersion(ctx, area.ID)
	if err != nil {
		return nil, err
	}
	key := CacheKey{
		AreaID:      area.ID,
		Today:       uc.engine.Today(),
		HorizonDays: horizon,
		HistoryDays: history,
		DataVersion: version,
	}

	if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
		uc.log.Warn().Err(err).Str("area_id", area.ID).Msg("caché de pronóstico no disponible")
	} else if ok {
		resp := *cached
		resp.Cached = true
		return &resp, nil
	}

	resp, err := uc.compute(ctx, area, key.Today, horizon, history)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, resp); err != nil {
		uc.log.Warn().Err(err).Str("area_id", area.ID).Msg("no se pudo guardar el pronóstico en caché")
	}

	ev := uc.log.Debug().Str("area", area.Name).Int("horizon_days", horizon).Int("history_days", history)
	if resp.CriticalStockDate != nil {
		ev = ev.Str("critical_stock_date", *resp.CriticalStockDate)
	}
	ev.Msg("pronóstico calculado")
	return resp, nil
}

func (uc *UseCase) compute(ctx context.Context, area *entity.PlantArea, today string, horizon, history int) (*dto.ForecastResponse, error) {
	todayT, err := forecast.ParseDay(today)
	if err != nil {
		return nil, err
	}
	// La ventana del promedio móvil necesita días previos al primero de la historia mostrada.
	window := uc.settings.Resolver.MovingAverageWindowDays
	if window <= 0 {
		window = forecast.DefaultResolverConfig().MovingAverageWindowDays
	}
	from := todayT.AddDate(0, 0, -(history + window - 1))

	records, err := uc.ledgerRepo.ListRawRecords(ctx, area.ID, from, todayT)
	if err != nil {
		return nil, err
	}
	masters, err := uc.masterRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	planned, err := uc.deliveryRepo.ListByArea(ctx, area.ID, todayT.AddDate(0, 0, 1), todayT.AddDate(0, 0, horizon))
	if err != nil {
		return nil, err
	}

	return Build(uc.engine, Input{
		AreaID:           area.ID,
		AreaName:         area.Name,
		Records:          records,
		Masters:          masters,
		Planned:          planned,
		HorizonDays:      horizon,
		HistoryDays:      history,
		GenerateSchedule: uc.settings.GenerateSchedule,
		Resolver:         uc.settings.Resolver,
	})
}

// bounds aplica los valores por defecto y valida los límites de la consulta.
func (uc *UseCase) bounds(req dto.ForecastRequest) (int, int, error) {
	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = uc.settings.HorizonDays
	}
	history := uc.settings.HistoryDays
	if req.HistoryDays != nil {
		history = *req.HistoryDays
	}
	if horizon < 1 || horizon > uc.settings.MaxHorizonDays {
		return 0, 0, fmt.Errorf("horizon_days debe estar entre 1 y %d: %w", uc.settings.MaxHorizonDays, domain.ErrInvalidInput)
	}
	if history < 0 || history > uc.settings.MaxHistoryDays {
		return 0, 0, fmt.Errorf("history_days debe estar entre 0 y %d: %w", uc.settings.MaxHistoryDays, domain.ErrInvalidInput)
	}
	return horizon, history, nil
}

// findArea acepta el ID (UUID) o el nombre del área.
func (uc *UseCase) findArea(ctx context.Context, ref string) (*entity.PlantArea, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("área vacía: %w", domain.ErrInvalidInput)
	}
	if _, err := uuid.Parse(ref); err == nil {
		area, err := uc.areaRepo.GetByID(ctx, ref)
		if err != nil {
			return nil, err
		}
		if area != nil {
			return area, nil
		}
	}
	area, err := uc.areaRepo.GetByName(ctx, ref)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, fmt.Errorf("área %q: %w", ref, domain.ErrNotFound)
	}
	return area, nil
}
