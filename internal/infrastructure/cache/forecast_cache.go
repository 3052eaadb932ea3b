package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/pkg/config"
)

const forecastKeyPrefix = "forecast"

var (
	_ forecast.Cache = (*RedisForecastCache)(nil)
	_ forecast.Cache = NoopForecastCache{}
)

// RedisForecastCache guarda respuestas de pronóstico serializadas en JSON con TTL.
type RedisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NoopForecastCache caché nulo: nunca encuentra nada y no guarda nada.
type NoopForecastCache struct{}

// NewForecastCache devuelve el caché Redis si está habilitado, o el nulo en otro caso.
func NewForecastCache(cfg config.CacheConfig) (forecast.Cache, error) {
	if !cfg.Enabled {
		return NoopForecastCache{}, nil
	}
	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return &RedisForecastCache{client: client, ttl: ttl}, nil
}

// Get devuelve (nil, false, nil) si la clave no existe.
func (c *RedisForecastCache) Get(ctx context.Context, key forecast.CacheKey) (*dto.ForecastResponse, bool, error) {
	payload, err := c.client.Get(ctx, buildForecastKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var resp dto.ForecastResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}
	return &resp, true, nil
}

// Set guarda la respuesta con el TTL configurado.
func (c *RedisForecastCache) Set(ctx context.Context, key forecast.CacheKey, resp *dto.ForecastResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}
	if err := c.client.Set(ctx, buildForecastKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateArea borra todos los pronósticos guardados del área.
func (c *RedisForecastCache) InvalidateArea(ctx context.Context, areaID string) error {
	return deleteKeysWithPrefix(ctx, c.client, areaKeyPrefix(areaID))
}

// Close libera las conexiones a Redis.
func (c *RedisForecastCache) Close() error {
	return c.client.Close()
}

func (NoopForecastCache) Get(context.Context, forecast.CacheKey) (*dto.ForecastResponse, bool, error) {
	return nil, false, nil
}

func (NoopForecastCache) Set(context.Context, forecast.CacheKey, *dto.ForecastResponse) error {
	return nil
}

func (NoopForecastCache) InvalidateArea(context.Context, string) error {
	return nil
}

// buildForecastKey forecast:<área>:<sha1(hoy|horizonte|historia|versión)>. El área queda en claro
// para poder invalidar por prefijo.
func buildForecastKey(key forecast.CacheKey) string {
	raw := fmt.Sprintf("today=%s|horizon=%d|history=%d|version=%s",
		key.Today, key.HorizonDays, key.HistoryDays, key.DataVersion)
	sum := sha1.Sum([]byte(raw))
	return areaKeyPrefix(key.AreaID) + hex.EncodeToString(sum[:])
}

func areaKeyPrefix(areaID string) string {
	return forecastKeyPrefix + ":" + areaID + ":"
}
