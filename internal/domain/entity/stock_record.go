package entity

// RawStockRecord es un registro del libro de stock tal como llega de la fuente (BD, exportación
// JSON, planilla). Los campos numéricos pueden venir como string, número o decimal; la única
// frontera de conversión es forecast.NormalizeHistory.
type RawStockRecord struct {
	Area         string `json:"area"`
	Date         any    `json:"date"`
	ClosingStock any    `json:"closing_stock"`
	StockOut     any    `json:"stock_out"`
	StockIn      any    `json:"stock_in"`
}

// HistoricalStockEntry representa un día contable cerrado de un área de planta.
// Inmutable una vez registrado; Date es clave única por área (YYYY-MM-DD).
type HistoricalStockEntry struct {
	Date        string  `json:"date"`
	StockLevel  float64 `json:"stock_level"`
	Consumption float64 `json:"consumption"`
	Arrivals    float64 `json:"arrivals"`
}
