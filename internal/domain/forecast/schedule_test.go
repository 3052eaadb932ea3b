package forecast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
	"github.com/jhoicas/Pronostico-api/internal/domain/forecast"
)

func TestGenerateDeliverySchedule_CadaSieteDias(t *testing.T) {
	got := forecast.GenerateDeliverySchedule("2026-03-10", 30, 250, 7)

	require.Len(t, got, 4)
	want := []string{"2026-03-17", "2026-03-24", "2026-03-31", "2026-04-07"}
	for i, d := range got {
		assert.Equal(t, want[i], d.ArrivalDate)
		assert.Equal(t, 250.0, d.Quantity)
		assert.Equal(t, entity.DeliverySourceGenerated, d.Source)
	}
}

func TestGenerateDeliverySchedule_UltimoDiaIncluido(t *testing.T) {
	got := forecast.GenerateDeliverySchedule("2026-03-10", 14, 10, 7)

	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-24", got[1].ArrivalDate)
}

func TestGenerateDeliverySchedule_EntradasInvalidas(t *testing.T) {
	cases := []struct {
		name      string
		start     string
		horizon   int
		frequency int
	}{
		{"fecha inválida", "mañana", 30, 7},
		{"horizonte cero", "2026-03-10", 0, 7},
		{"frecuencia cero", "2026-03-10", 30, 0},
		{"frecuencia negativa", "2026-03-10", 30, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := forecast.GenerateDeliverySchedule(tc.start, tc.horizon, 100, tc.frequency)
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestGenerateDeliverySchedule_FrecuenciaMayorAlHorizonte(t *testing.T) {
	assert.Empty(t, forecast.GenerateDeliverySchedule("2026-03-10", 5, 100, 7))
}

func TestMergeDeliveries_OrdenaYDescarta(t *testing.T) {
	planned := []entity.PlannedDelivery{
		{ID: "p2", ArrivalDate: "2026-03-20T10:00:00Z", Quantity: 40, Source: entity.DeliverySourcePlanned},
		{ID: "p1", ArrivalDate: "2026-03-12", Quantity: -8, Source: entity.DeliverySourcePlanned},
		{ID: "bad", ArrivalDate: "pronto", Quantity: 1},
	}
	generated := forecast.GenerateDeliverySchedule("2026-03-10", 14, 100, 7)

	got := forecast.MergeDeliveries(planned, generated)

	require.Len(t, got, 4)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, 0.0, got[0].Quantity, "cantidades negativas se llevan a cero")
	assert.Equal(t, "2026-03-17", got[1].ArrivalDate)
	assert.Equal(t, "2026-03-20", got[2].ArrivalDate, "la hora se descarta")
	assert.Equal(t, "2026-03-24", got[3].ArrivalDate)
}
