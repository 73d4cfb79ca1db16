package entity

// PixelGrid — декодированное RGB-изображение, хранится построчно (row-major).
// После декодирования не изменяется.
type PixelGrid struct {
	Width  int
	Height int
	Pix    []uint8 // тройки R, G, B; len = Width*Height*3
}

// NewPixelGrid создаёт пустую сетку заданного размера.
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Empty сообщает, что у сетки нет ни одного пикселя.
func (g *PixelGrid) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0
}

// RGB возвращает каналы пикселя (x, y).
func (g *PixelGrid) RGB(x, y int) (r, gr, b uint8) {
	i := (y*g.Width + x) * 3
	return g.Pix[i], g.Pix[i+1], g.Pix[i+2]
}

// SetRGB записывает каналы пикселя (x, y). Используется только при декодировании.
func (g *PixelGrid) SetRGB(x, y int, r, gr, b uint8) {
	i := (y*g.Width + x) * 3
	g.Pix[i], g.Pix[i+1], g.Pix[i+2] = r, gr, b
}

// IntensityMap — одноканальная карта яркости, значения в [0, 1].
type IntensityMap struct {
	Width  int
	Height int
	Values []float64
}

// At возвращает значение в точке (x, y).
func (m *IntensityMap) At(x, y int) float64 {
	return m.Values[y*m.Width+x]
}

// Mask — булева маска аномальных пикселей того же размера, что и карта яркости.
type Mask struct {
	Width  int
	Height int
	Cells  []bool
}

// NewMask создаёт маску, где все клетки false.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Cells:  make([]bool, width*height),
	}
}

// At возвращает значение клетки (x, y).
func (m *Mask) At(x, y int) bool {
	return m.Cells[y*m.Width+x]
}

// Set выставляет значение клетки (x, y).
func (m *Mask) Set(x, y int, v bool) {
	m.Cells[y*m.Width+x] = v
}

// Count возвращает число клеток со значением true.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.Cells {
		if c {
			n++
		}
	}
	return n
}
