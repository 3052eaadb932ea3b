package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

var _ repository.PlantAreaRepository = (*PlantAreaRepo)(nil)

// PlantAreaRepo implementación del puerto PlantAreaRepository sobre PostgreSQL.
type PlantAreaRepo struct {
	q Querier
}

// NewPlantAreaRepository construye el adaptador de áreas. Pasar pool o tx (Querier).
func NewPlantAreaRepository(q Querier) *PlantAreaRepo {
	return &PlantAreaRepo{q: q}
}

// Create persiste una nueva área. Un nombre repetido devuelve domain.ErrDuplicate.
func (r *PlantAreaRepo) Create(ctx context.Context, area *entity.PlantArea) error {
	query := `
		INSERT INTO plant_areas (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		area.ID, area.Name, area.Description, area.CreatedAt, area.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert plant area %q: %w", area.Name, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert plant area: %w", err)
	}
	return nil
}

// GetByID obtiene un área por ID.
func (r *PlantAreaRepo) GetByID(ctx context.Context, id string) (*entity.PlantArea, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM plant_areas WHERE id::text = $1`
	return r.getOne(ctx, "get plant area", query, id)
}

// GetByName obtiene un área por nombre, sin distinguir mayúsculas.
func (r *PlantAreaRepo) GetByName(ctx context.Context, name string) (*entity.PlantArea, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM plant_areas WHERE lower(name) = lower($1)
		ORDER BY created_at DESC LIMIT 1`
	return r.getOne(ctx, "get plant area by name", query, name)
}

func (r *PlantAreaRepo) getOne(ctx context.Context, op, query string, arg string) (*entity.PlantArea, error) {
	var a entity.PlantArea
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

// List devuelve todas las áreas ordenadas por nombre.
func (r *PlantAreaRepo) List(ctx context.Context) ([]*entity.PlantArea, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM plant_areas ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plant areas: %w", err)
	}
	defer rows.Close()
	var list []*entity.PlantArea
	for rows.Next() {
		var a entity.PlantArea
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan plant area: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
