package forecast

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Pronostico-api/internal/domain/entity"
)

// Valores de política cuando faltan datos maestros o son inválidos.
// Deben ser positivos: un consumo cero deja "días hasta agotar" indefinido.
const (
	defaultCurrentStock        = 1000.0
	defaultSafetyStock         = 100.0
	defaultAvgDailyConsumption = 50.0
	defaultMinSamples          = 3
	defaultWindowDays          = 7
)

// ResolverConfig agrupa las constantes de política del motor (defaults de parámetros y
// umbrales del promedio móvil). Se inyecta desde la configuración de la app.
type ResolverConfig struct {
	DefaultCurrentStock        float64
	DefaultSafetyStock         float64
	DefaultAvgDailyConsumption float64
	MinMovingAverageSamples    int // mínimo de días para aceptar un promedio
	MovingAverageWindowDays    int // ventana móvil, incluye el día evaluado
}

// DefaultResolverConfig devuelve la política estándar: stock 1000, seguridad 100,
// consumo 50/día, promedio móvil de 7 días con al menos 3 muestras.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		DefaultCurrentStock:        defaultCurrentStock,
		DefaultSafetyStock:         defaultSafetyStock,
		DefaultAvgDailyConsumption: defaultAvgDailyConsumption,
		MinMovingAverageSamples:    defaultMinSamples,
		MovingAverageWindowDays:    defaultWindowDays,
	}
}

// withDefaults reemplaza valores no positivos de la configuración por los de política.
func (c ResolverConfig) withDefaults() ResolverConfig {
	if !positive(c.DefaultCurrentStock) {
		c.DefaultCurrentStock = defaultCurrentStock
	}
	if !positive(c.DefaultSafetyStock) {
		c.DefaultSafetyStock = defaultSafetyStock
	}
	if !positive(c.DefaultAvgDailyConsumption) {
		c.DefaultAvgDailyConsumption = defaultAvgDailyConsumption
	}
	if c.MinMovingAverageSamples <= 0 {
		c.MinMovingAverageSamples = defaultMinSamples
	}
	if c.MovingAverageWindowDays <= 0 {
		c.MovingAverageWindowDays = defaultWindowDays
	}
	return c
}

// ResolveParameters deriva los parámetros del área desde los datos maestros.
// Cada valor que no sea finito y positivo se reemplaza por su default; si el área no tiene
// registro se usan los tres defaults. Nunca falla.
func ResolveParameters(records []entity.PlantMasterData, area string, cfg ResolverConfig) entity.PlantParameters {
	cfg = cfg.withDefaults()
	params := entity.PlantParameters{
		CurrentStock:        cfg.DefaultCurrentStock,
		SafetyStock:         cfg.DefaultSafetyStock,
		AvgDailyConsumption: cfg.DefaultAvgDailyConsumption,
	}
	rec, ok := FindMasterData(records, area)
	if !ok {
		return params
	}
	if positive(rec.CurrentStock) {
		params.CurrentStock = rec.CurrentStock
	}
	if positive(rec.SafetyStock) {
		params.SafetyStock = rec.SafetyStock
	}
	if positive(rec.AvgDailyConsumption) {
		params.AvgDailyConsumption = rec.AvgDailyConsumption
	}
	return params
}

// FindMasterData busca el registro del área por ID exacto o por nombre normalizado.
// Si hay varios con el mismo nombre gana el último.
func FindMasterData(records []entity.PlantMasterData, area string) (entity.PlantMasterData, bool) {
	key := AreaKey(area)
	if key == "" {
		return entity.PlantMasterData{}, false
	}
	var (
		found entity.PlantMasterData
		ok    bool
	)
	for _, rec := range records {
		if (rec.AreaID != "" && rec.AreaID == area) || AreaKey(rec.AreaName) == key {
			found, ok = rec, true
		}
	}
	return found, ok
}

// AreaKey normaliza un nombre de área para comparación: sin tildes, espacios colapsados
// y case folding Unicode ("  Cámara  FRÍA " == "camara fria").
func AreaKey(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	return cases.Fold().String(stripped)
}

func positive(f float64) bool {
	return isFinite(f) && f > 0
}
