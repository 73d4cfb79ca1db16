package analysis

import "nutrient-bot/internal/domain/entity"

// Границы полосы «средней красноты», которая считается признаком дефицита.
const (
	LowThreshold  = 0.75
	HighThreshold = 0.9
)

// BandMask отмечает клетки, у которых low <= значение <= high (обе границы включены).
func BandMask(m *entity.IntensityMap, low, high float64) *entity.Mask {
	mask := entity.NewMask(m.Width, m.Height)
	for i, v := range m.Values {
		mask.Cells[i] = v >= low && v <= high
	}
	return mask
}

// DeficiencyMask — BandMask с фиксированными порогами.
func DeficiencyMask(m *entity.IntensityMap) *entity.Mask {
	return BandMask(m, LowThreshold, HighThreshold)
}
