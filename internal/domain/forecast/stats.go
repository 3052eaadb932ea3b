package forecast

import "math"

// ColumnStats resumen de una columna numérica.
type ColumnStats struct {
	Min   float64 `json:"min"`
	Avg   float64 `json:"avg"`
	Max   float64 `json:"max"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// SummarizeColumn calcula min/avg/max/sum ignorando NaN e infinitos. Sin datos devuelve ceros.
func SummarizeColumn(values []float64) ColumnStats {
	var st ColumnStats
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if st.Count == 0 {
			st.Min, st.Max = v, v
		} else {
			st.Min = math.Min(st.Min, v)
			st.Max = math.Max(st.Max, v)
		}
		st.Sum += v
		st.Count++
	}
	if st.Count > 0 {
		st.Avg = st.Sum / float64(st.Count)
	}
	return st
}
