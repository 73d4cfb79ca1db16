package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelGrid_SetAndGet(t *testing.T) {
	g := NewPixelGrid(3, 2)
	require.False(t, g.Empty())
	g.SetRGB(2, 1, 10, 20, 30)
	r, gr, b := g.RGB(2, 1)
	require.Equal(t, []uint8{10, 20, 30}, []uint8{r, gr, b})
	require.Len(t, g.Pix, 18)
}

func TestPixelGrid_Empty(t *testing.T) {
	var nilGrid *PixelGrid
	require.True(t, nilGrid.Empty())
	require.True(t, NewPixelGrid(0, 5).Empty())
	require.True(t, NewPixelGrid(5, 0).Empty())
}

func TestMask_Count(t *testing.T) {
	m := NewMask(4, 4)
	require.Zero(t, m.Count())
	m.Set(1, 2, true)
	m.Set(3, 3, true)
	require.True(t, m.At(1, 2))
	require.False(t, m.At(2, 1))
	require.Equal(t, 2, m.Count())
}
