package forecast_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appforecast "github.com/jhoicas/Pronostico-api/internal/application/forecast"
	"github.com/jhoicas/Pronostico-api/internal/application/dto"
	"github.com/jhoicas/Pronostico-api/internal/domain"
	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
	"github.com/jhoicas/Pronostico-api/pkg/logger"
)

const (
	empaqueID  = "6f1c2d3e-0000-4000-8000-000000000001"
	despachoID = "6f1c2d3e-0000-4000-8000-000000000002"
	camaraID   = "6f1c2d3e-0000-4000-8000-000000000003"
)

type fixture struct {
	areas      *memAreas
	ledger     *memLedger
	master     *memMaster
	deliveries *memDeliveries
	cache      *memCache
	settings   appforecast.Settings
}

func newFixture() *fixture {
	f := &fixture{
		areas: &memAreas{items: []*entity.PlantArea{
			{ID: empaqueID, Name: "Empaque"},
			{ID: despachoID, Name: "Despacho"},
		}},
		ledger:     newMemLedger(),
		master:     &memMaster{},
		deliveries: &memDeliveries{},
		cache:      newMemCache(),
		settings:   appforecast.DefaultSettings(),
	}
	closings := []float64{150, 138, 130, 115, 104, 95, 85}
	outs := []float64{10, 12, 8, 15, 11, 9, 13}
	for i := range closings {
		f.ledger.records[empaqueID] = append(f.ledger.records[empaqueID], entity.RawStockRecord{
			Area: "Empaque", Date: day(i - 7), ClosingStock: closings[i], StockOut: outs[i],
		})
	}
	f.master.items = []entity.PlantMasterData{
		{AreaID: empaqueID, AreaName: "Empaque", CurrentStock: 85, SafetyStock: 40, AvgDailyConsumption: 11},
		{AreaID: despachoID, AreaName: "Despacho", CurrentStock: 500, SafetyStock: 50, AvgDailyConsumption: 5},
	}
	return f
}

func (f *fixture) useCase() *appforecast.UseCase {
	engine := forecast.NewEngineWithClock(func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	})
	return appforecast.NewUseCase(f.areas, f.ledger, f.master, f.deliveries, f.cache, engine, f.settings, logger.Nop())
}

func day(offset int) string {
	d, _ := forecast.AddDays("2026-03-10", offset)
	return d
}

func intPtr(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// GetForecast
// ──────────────────────────────────────────────────────────────────────────────

func TestGetForecast_PorNombre(t *testing.T) {
	f := newFixture()
	f.settings.GenerateSchedule = false

	resp, err := f.useCase().GetForecast(context.Background(), "Empaque", dto.ForecastRequest{})
	require.NoError(t, err)

	assert.Equal(t, empaqueID, resp.AreaID)
	assert.Equal(t, "2026-03-10", resp.Today)
	assert.Len(t, resp.PrognosisData, 7+1+30)
	require.NotNil(t, resp.CriticalStockDate)
	assert.Equal(t, "2026-03-15", *resp.CriticalStockDate)
	assert.True(t, resp.Metrics.IsStockCritical)
	require.NotNil(t, resp.Metrics.DaysUntilEmpty)
	assert.InDelta(t, 7.73, *resp.Metrics.DaysUntilEmpty, 0.01)
	assert.Len(t, resp.Comparison, len(resp.PrognosisData))
	assert.Equal(t, 7, resp.ComparisonSummary.RowsWithActual)
	assert.False(t, resp.Cached)
}

func TestGetForecast_PorIDYCache(t *testing.T) {
	f := newFixture()
	uc := f.useCase()

	first, err := uc.GetForecast(context.Background(), empaqueID, dto.ForecastRequest{HorizonDays: 10})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := uc.GetForecast(context.Background(), empaqueID, dto.ForecastRequest{HorizonDays: 10})
	require.NoError(t, err)
	assert.True(t, second.Cached, "misma clave y misma versión de datos")
	assert.False(t, first.Cached, "la respuesta guardada no se modifica")
	assert.Equal(t, 1, f.cache.sets)

	f.ledger.version = "v2"
	third, err := uc.GetForecast(context.Background(), empaqueID, dto.ForecastRequest{HorizonDays: 10})
	require.NoError(t, err)
	assert.False(t, third.Cached, "una nueva versión de datos fuerza recálculo")
	assert.Equal(t, 2, f.cache.sets)
}

func TestGetForecast_ErrorDeCacheNoFalla(t *testing.T) {
	f := newFixture()
	f.cache.getErr = errors.New("redis caído")

	resp, err := f.useCase().GetForecast(context.Background(), "Empaque", dto.ForecastRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestGetForecast_AreaInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.useCase().GetForecast(context.Background(), "Bodega 9", dto.ForecastRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.useCase().GetForecast(context.Background(), uuid.New().String(), dto.ForecastRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetForecast_LimitesInvalidos(t *testing.T) {
	cases := []struct {
		name string
		req  dto.ForecastRequest
	}{
		{"horizonte excesivo", dto.ForecastRequest{HorizonDays: 400}},
		{"horizonte negativo", dto.ForecastRequest{HorizonDays: -1}},
		{"historia negativa", dto.ForecastRequest{HistoryDays: intPtr(-1)}},
		{"historia excesiva", dto.ForecastRequest{HistoryDays: intPtr(1000)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newFixture().useCase().GetForecast(context.Background(), "Empaque", tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetForecast_HistoriaCero(t *testing.T) {
	resp, err := newFixture().useCase().GetForecast(context.Background(), "Empaque",
		dto.ForecastRequest{HorizonDays: 5, HistoryDays: intPtr(0)})
	require.NoError(t, err)

	require.Len(t, resp.PrognosisData, 6)
	assert.Equal(t, "2026-03-10", resp.PrognosisData[0].Date)
}

func TestGetForecast_CalendarioGenerado(t *testing.T) {
	f := newFixture()
	f.master.items[0].DeliveryQuantity = 300
	f.master.items[0].DeliveryFrequencyDays = 3

	resp, err := f.useCase().GetForecast(context.Background(), "Empaque", dto.ForecastRequest{})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Deliveries)
	assert.Equal(t, entity.DeliverySourceGenerated, resp.Deliveries[0].Source)
	assert.Equal(t, "2026-03-13", resp.Deliveries[0].ArrivalDate)
	assert.Len(t, resp.Deliveries, 10)
	assert.Nil(t, resp.CriticalStockDate, "300 cada 3 días cubre un consumo de 11/día")
}

func TestGetForecast_EntregasPlanificadasSustituyenAlCalendario(t *testing.T) {
	f := newFixture()
	f.master.items[0].DeliveryQuantity = 300
	f.master.items[0].DeliveryFrequencyDays = 3
	f.deliveries.items = []entity.PlannedDelivery{
		{ID: "d1", AreaID: empaqueID, ArrivalDate: day(3), Quantity: 100, Source: entity.DeliverySourcePlanned},
		{ID: "d0", AreaID: empaqueID, ArrivalDate: day(60), Quantity: 999, Source: entity.DeliverySourcePlanned},
	}

	resp, err := f.useCase().GetForecast(context.Background(), "Empaque", dto.ForecastRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Deliveries, 1, "solo entregas dentro del horizonte")
	assert.Equal(t, "d1", resp.Deliveries[0].ID)
	require.NotNil(t, resp.CriticalStockDate)
	assert.Equal(t, day(14), *resp.CriticalStockDate)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetCriticalAlerts
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCriticalAlerts_OrdenadasPorFecha(t *testing.T) {
	f := newFixture()
	f.settings.GenerateSchedule = false
	f.settings.Parallelism = 2
	f.areas.items = append(f.areas.items, &entity.PlantArea{ID: camaraID, Name: "Cámara Fría"})
	f.master.items = append(f.master.items, entity.PlantMasterData{
		AreaID: camaraID, AreaName: "Cámara Fría", CurrentStock: 50, SafetyStock: 40, AvgDailyConsumption: 11,
	})

	resp, err := f.useCase().GetCriticalAlerts(context.Background(), dto.ForecastRequest{})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2, "Despacho no cruza su stock de seguridad")
	assert.Equal(t, "Cámara Fría", resp.Items[0].AreaName)
	assert.Equal(t, "2026-03-11", resp.Items[0].CriticalStockDate)
	assert.Equal(t, 1, resp.Items[0].DaysUntilCritical)
	assert.Equal(t, "Empaque", resp.Items[1].AreaName)
	assert.Equal(t, 5, resp.Items[1].DaysUntilCritical)
	assert.Equal(t, 30, resp.HorizonDays)
}

func TestGetCriticalAlerts_ErrorDeRepositorio(t *testing.T) {
	f := newFixture()
	f.areas.err = errors.New("conexión perdida")

	_, err := f.useCase().GetCriticalAlerts(context.Background(), dto.ForecastRequest{})
	require.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterDelivery y ListAreas
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterDelivery_Exito(t *testing.T) {
	f := newFixture()

	out, err := f.useCase().RegisterDelivery(context.Background(), "empaque",
		dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-12", Quantity: 120})
	require.NoError(t, err)

	_, parseErr := uuid.Parse(out.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, entity.DeliverySourcePlanned, out.Source)
	require.Len(t, f.deliveries.items, 1)
	assert.Equal(t, empaqueID, f.deliveries.items[0].AreaID)
	assert.Equal(t, []string{empaqueID}, f.cache.invalidated)
}

func TestRegisterDelivery_Validaciones(t *testing.T) {
	cases := []struct {
		name    string
		area    string
		req     dto.RegisterDeliveryRequest
		wantErr error
	}{
		{"fecha pasada", "Empaque", dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-01", Quantity: 10}, domain.ErrInvalidInput},
		{"hoy", "Empaque", dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-10", Quantity: 10}, domain.ErrInvalidInput},
		{"fecha inválida", "Empaque", dto.RegisterDeliveryRequest{ArrivalDate: "mañana", Quantity: 10}, domain.ErrInvalidInput},
		{"cantidad cero", "Empaque", dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-12", Quantity: 0}, domain.ErrInvalidInput},
		{"cantidad negativa", "Empaque", dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-12", Quantity: -4}, domain.ErrInvalidInput},
		{"área inexistente", "Bodega 9", dto.RegisterDeliveryRequest{ArrivalDate: "2026-03-12", Quantity: 10}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.useCase().RegisterDelivery(context.Background(), tc.area, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.deliveries.items)
		})
	}
}

func TestListAreas(t *testing.T) {
	resp, err := newFixture().useCase().ListAreas(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "Empaque", resp.Items[0].Name)
}
