// Package analysis содержит чистые преобразования снимка: нормализацию яркости,
// полосовую маску и разметку связных областей.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"nutrient-bot/internal/domain/entity"
)

// Epsilon добавляется к знаменателю, чтобы однотонный снимок не давал NaN.
const Epsilon = 1e-8

// Luminance переводит RGB-сетку в одноканальную яркость: среднее арифметическое каналов.
func Luminance(grid *entity.PixelGrid) ([]float64, error) {
	if grid.Empty() {
		return nil, fmt.Errorf("empty pixel grid: %w", entity.ErrInvalidInput)
	}

	out := make([]float64, grid.Width*grid.Height)
	for i := range out {
		p := grid.Pix[i*3 : i*3+3]
		out[i] = (float64(p[0]) + float64(p[1]) + float64(p[2])) / 3
	}
	return out, nil
}

// Normalize строит карту яркости и растягивает её в [0, 1] по глобальным min/max.
func Normalize(grid *entity.PixelGrid) (*entity.IntensityMap, error) {
	values, err := Luminance(grid)
	if err != nil {
		return nil, err
	}

	gmin := floats.Min(values)
	denom := floats.Max(values) - gmin + Epsilon
	for i, v := range values {
		values[i] = (v - gmin) / denom
	}

	return &entity.IntensityMap{
		Width:  grid.Width,
		Height: grid.Height,
		Values: values,
	}, nil
}
