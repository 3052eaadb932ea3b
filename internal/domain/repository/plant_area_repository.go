package repository

import (
	"context"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// PlantAreaRepository define el puerto de persistencia para las áreas de la planta (DIP).
// GetByID y GetByName devuelven (nil, nil) cuando el área no existe.
type PlantAreaRepository interface {
	Create(ctx context.Context, area *entity.PlantArea) error
	GetByID(ctx context.Context, id string) (*entity.PlantArea, error)
	GetByName(ctx context.Context, name string) (*entity.PlantArea, error)
	List(ctx context.Context) ([]*entity.PlantArea, error)
}
