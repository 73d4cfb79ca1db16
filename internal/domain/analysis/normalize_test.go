package analysis

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"nutrient-bot/internal/domain/entity"
)

func TestLuminance_IsChannelMean(t *testing.T) {
	g := entity.NewPixelGrid(2, 1)
	g.SetRGB(0, 0, 30, 60, 90)
	g.SetRGB(1, 0, 255, 0, 0)

	lum, err := Luminance(g)
	require.NoError(t, err)
	require.InDelta(t, 60.0, lum[0], 1e-12)
	require.InDelta(t, 85.0, lum[1], 1e-12)
}

func TestNormalize_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := entity.NewPixelGrid(17, 11)
	for i := range g.Pix {
		g.Pix[i] = uint8(rng.Intn(256))
	}
	// гарантируем ненулевой диапазон
	g.SetRGB(0, 0, 0, 0, 0)
	g.SetRGB(16, 10, 255, 255, 255)

	m, err := Normalize(g)
	require.NoError(t, err)
	require.Equal(t, 17, m.Width)
	require.Equal(t, 11, m.Height)
	require.Len(t, m.Values, 17*11)
	for _, v := range m.Values {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
	require.Equal(t, 0.0, m.At(0, 0))
	require.InDelta(t, 1.0, m.At(16, 10), 1e-9)
	require.Less(t, m.At(16, 10), 1.0)
}

func TestNormalize_ConstantGrid(t *testing.T) {
	g := entity.NewPixelGrid(4, 4)
	for i := range g.Pix {
		g.Pix[i] = 128
	}

	m, err := Normalize(g)
	require.NoError(t, err)
	for _, v := range m.Values {
		require.False(t, math.IsNaN(v))
		require.False(t, math.IsInf(v, 0))
		require.Equal(t, 0.0, v)
	}
}

func TestNormalize_EmptyGrid(t *testing.T) {
	_, err := Normalize(entity.NewPixelGrid(0, 3))
	require.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = Normalize(nil)
	require.ErrorIs(t, err, entity.ErrInvalidInput)
}
