package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

// RegisterDelivery registra una entrega planificada para el área e invalida sus pronósticos en caché.
// La fecha debe ser posterior a hoy: lo que llega hoy ya se registra en el libro diario.
func (uc *UseCase) RegisterDelivery(ctx context.Context, areaRef string, req dto.RegisterDeliveryRequest) (*dto.DeliveryDTO, error) {
	arrival, err := forecast.ParseDay(req.ArrivalDate)
	if err != nil {
		return nil, err
	}
	if req.Quantity <= 0 || forecast.CoerceQuantity(req.Quantity) != req.Quantity {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}
	today := uc.engine.Today()
	day := forecast.FormatDay(arrival)
	if day <= today {
		return nil, fmt.Errorf("arrival_date %s no es posterior a hoy (%s): %w", day, today, domain.ErrInvalidInput)
	}

	area, err := uc.findArea(ctx, areaRef)
	if err != nil {
		return nil, err
	}

	d := &entity.PlannedDelivery{
		ID:          uuid.New().String(),
		AreaID:      area.ID,
		ArrivalDate: day,
		Quantity:    req.Quantity,
		Source:      entity.DeliverySourcePlanned,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.deliveryRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	if err := uc.cache.InvalidateArea(ctx, area.ID); err != nil {
		uc.log.Warn().Err(err).Str("area_id", area.ID).Msg("no se pudo invalidar el caché del área")
	}
	uc.log.Info().
		Str("area", area.Name).
		Str("arrival_date", day).
		Float64("quantity", req.Quantity).
		Msg("entrega planificada registrada")

	out := toDeliveryDTO(*d)
	return &out, nil
}
