package repository

import (
	"context"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// MasterDataRepository datos maestros de planta (stock actual, seguridad, consumo medio, entregas típicas).
type MasterDataRepository interface {
	List(ctx context.Context) ([]entity.PlantMasterData, error)
	Upsert(ctx context.Context, rec *entity.PlantMasterData) error
}
