package forecast

import (
	"sort"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// GenerateDeliverySchedule genera entregas cada frequencyDays días a partir de startDate
// (excluido) hasta startDate+horizonDays (incluido), todas por avgQuantity.
// Entradas inválidas devuelven un calendario vacío.
func GenerateDeliverySchedule(startDate string, horizonDays int, avgQuantity float64, frequencyDays int) []entity.PlannedDelivery {
	start, err := ParseDay(startDate)
	if err != nil || horizonDays <= 0 || frequencyDays <= 0 {
		return []entity.PlannedDelivery{}
	}
	qty := nonNegative(avgQuantity)
	out := make([]entity.PlannedDelivery, 0, horizonDays/frequencyDays)
	for d := frequencyDays; d <= horizonDays; d += frequencyDays {
		out = append(out, entity.PlannedDelivery{
			ArrivalDate: FormatDay(start.AddDate(0, 0, d)),
			Quantity:    qty,
			Source:      entity.DeliverySourceGenerated,
		})
	}
	return out
}

// MergeDeliveries une calendarios (aceptados y generados) ordenando por fecha de llegada.
// Descarta entregas sin fecha válida y lleva cantidades inválidas a cero.
func MergeDeliveries(lists ...[]entity.PlannedDelivery) []entity.PlannedDelivery {
	var out []entity.PlannedDelivery
	for _, list := range lists {
		for _, d := range list {
			day, ok := dayKey(d.ArrivalDate)
			if !ok {
				continue
			}
			d.ArrivalDate = day
			d.Quantity = nonNegative(d.Quantity)
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArrivalDate < out[j].ArrivalDate
	})
	return out
}
