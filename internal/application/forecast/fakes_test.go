package forecast_test

import (
	"context"
	"strings"
	"sync"
	"time"

	appforecast "github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memAreas struct {
	mu    sync.Mutex
	items []*entity.PlantArea
	err   error
}

func (m *memAreas) Create(_ context.Context, a *entity.PlantArea) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, a)
	return nil
}

func (m *memAreas) GetByID(_ context.Context, id string) (*entity.PlantArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAreas) GetByName(_ context.Context, name string) (*entity.PlantArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memAreas) List(_ context.Context) ([]*entity.PlantArea, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]*entity.PlantArea(nil), m.items...), nil
}

type memLedger struct {
	mu      sync.Mutex
	records map[string][]entity.RawStockRecord // por área (ID)
	version string
}

func newMemLedger() *memLedger {
	return &memLedger{records: make(map[string][]entity.RawStockRecord), version: "v1"}
}

func (m *memLedger) ListRawRecords(_ context.Context, areaID string, from, to time.Time) ([]entity.RawStockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.RawStockRecord
	for _, r := range m.records[areaID] {
		s, _ := r.Date.(string)
		d, err := forecast.ParseDay(s)
		if err != nil || d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memLedger) Upsert(_ context.Context, areaID string, e entity.HistoricalStockEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[areaID] = append(m.records[areaID], entity.RawStockRecord{
		Date: e.Date, ClosingStock: e.StockLevel, StockOut: e.Consumption, StockIn: e.Arrivals,
	})
	return nil
}

func (m *memLedger) DataVersion(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

type memMaster struct {
	mu    sync.Mutex
	items []entity.PlantMasterData
}

func (m *memMaster) List(_ context.Context) ([]entity.PlantMasterData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]entity.PlantMasterData(nil), m.items...), nil
}

func (m *memMaster) Upsert(_ context.Context, rec *entity.PlantMasterData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *rec)
	return nil
}

type memDeliveries struct {
	mu    sync.Mutex
	items []entity.PlannedDelivery
}

func (m *memDeliveries) Create(_ context.Context, d *entity.PlannedDelivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, *d)
	return nil
}

func (m *memDeliveries) ListByArea(_ context.Context, areaID string, from, to time.Time) ([]entity.PlannedDelivery, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.PlannedDelivery
	for _, d := range m.items {
		day, err := forecast.ParseDay(d.ArrivalDate)
		if d.AreaID != areaID || err != nil || day.Before(from) || day.After(to) {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché y transacciones
// ──────────────────────────────────────────────────────────────────────────────

type memCache struct {
	mu          sync.Mutex
	data        map[appforecast.CacheKey]*dto.ForecastResponse
	sets        int
	invalidated []string
	getErr      error
}

func newMemCache() *memCache {
	return &memCache{data: make(map[appforecast.CacheKey]*dto.ForecastResponse)}
}

func (c *memCache) Get(_ context.Context, key appforecast.CacheKey) (*dto.ForecastResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	resp, ok := c.data[key]
	return resp, ok, nil
}

func (c *memCache) Set(_ context.Context, key appforecast.CacheKey, resp *dto.ForecastResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = resp
	c.sets++
	return nil
}

func (c *memCache) InvalidateArea(_ context.Context, areaID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, areaID)
	for k := range c.data {
		if k.AreaID == areaID {
			delete(c.data, k)
		}
	}
	return nil
}

type fakeTx struct {
	areas      *memAreas
	ledger     *memLedger
	master     *memMaster
	deliveries *memDeliveries
	failWith   error
}

func (f *fakeTx) Run(_ context.Context, fn func(
	repository.PlantAreaRepository,
	repository.StockLedgerRepository,
	repository.MasterDataRepository,
	repository.PlannedDeliveryRepository,
) error) error {
	if err := fn(f.areas, f.ledger, f.master, f.deliveries); err != nil {
		return err
	}
	return f.failWith
}
