package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"nutrient-bot/internal/domain/entity"
)

func TestBandMask_InclusiveBounds(t *testing.T) {
	m := &entity.IntensityMap{
		Width:  5,
		Height: 1,
		Values: []float64{0.74, 0.75, 0.8, 0.9, 0.91},
	}

	mask := DeficiencyMask(m)
	require.Equal(t, []bool{false, true, true, true, false}, mask.Cells)
}

func TestBandMask_WideningNeverShrinks(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m := &entity.IntensityMap{Width: 32, Height: 32, Values: make([]float64, 32*32)}
	for i := range m.Values {
		m.Values[i] = rng.Float64()
	}

	bands := [][2]float64{
		{0.8, 0.85},
		{0.75, 0.9},
		{0.7, 0.9},
		{0.5, 0.95},
		{0, 1},
	}
	prev := -1
	for _, b := range bands {
		n := BandMask(m, b[0], b[1]).Count()
		require.GreaterOrEqual(t, n, prev, "band %v", b)
		prev = n
	}
	require.Equal(t, 32*32, prev)
}
