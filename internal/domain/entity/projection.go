package entity

// DailyProjectionData es la unidad de salida del motor: una fila por día calendario
// entre la historia y el horizonte proyectado.
type DailyProjectionData struct {
	Date        string  `json:"date"`
	StockLevel  float64 `json:"stock_level"`
	Consumption float64 `json:"consumption"`
	Arrivals    float64 `json:"arrivals"`
	IsActual    bool    `json:"is_actual"`   // true para historia y hoy
	Synthesized bool    `json:"synthesized"` // día histórico sin registro, completado con los parámetros
}

// PredictionResult resultado completo del motor de pronóstico.
// CriticalStockDate es nil cuando la proyección nunca baja del stock de seguridad.
type PredictionResult struct {
	PrognosisData     []DailyProjectionData `json:"prognosis_data"`
	CriticalStockDate *string               `json:"critical_stock_date"`
}

// ProjectedRows devuelve solo las filas proyectadas (IsActual=false).
func (r PredictionResult) ProjectedRows() []DailyProjectionData {
	out := make([]DailyProjectionData, 0, len(r.PrognosisData))
	for _, row := range r.PrognosisData {
		if !row.IsActual {
			out = append(out, row)
		}
	}
	return out
}
