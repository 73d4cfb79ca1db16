package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"nutrient-bot/internal/domain/entity"
)

// Ограничения размера снимка по умолчанию
const (
	DefaultMaxSide   = 8192
	DefaultMaxPixels = 16_000_000
)

// highlightColor — цвет рамок вокруг найденных областей
var highlightColor = color.RGBA{G: 255, A: 255}

// checkSize отклоняет снимки больше maxSide по стороне или maxPixels по площади.
// Нулевой лимит не проверяется.
func checkSize(width, height, maxSide, maxPixels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("image has no pixels: %w", entity.ErrInvalidInput)
	}
	if maxSide > 0 && (width > maxSide || height > maxSide) {
		return fmt.Errorf("image %dx%d exceeds side limit %d: %w", width, height, maxSide, entity.ErrInvalidInput)
	}
	if maxPixels > 0 && int64(width)*int64(height) > int64(maxPixels) {
		return fmt.Errorf("image %dx%d exceeds pixel limit %d: %w", width, height, maxPixels, entity.ErrInvalidInput)
	}
	return nil
}

// checkHeader читает только заголовок снимка и проверяет его размеры до полного декодирования.
// Для форматов, которые не распознаёт image, возвращает image.ErrFormat без обёртки.
func checkHeader(imageData []byte, maxSide, maxPixels int) error {
	if len(imageData) == 0 {
		return fmt.Errorf("empty image: %w", entity.ErrInvalidInput)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if errors.Is(err, image.ErrFormat) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to read image header: %v: %w", err, entity.ErrInvalidInput)
	}
	return checkSize(cfg.Width, cfg.Height, maxSide, maxPixels)
}

// gridFromImage переводит изображение в RGB-сетку, альфа-канал отбрасывается.
func gridFromImage(img image.Image) (*entity.PixelGrid, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels: %w", entity.ErrInvalidInput)
	}

	grid := entity.NewPixelGrid(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			grid.SetRGB(x, y, c.R, c.G, c.B)
		}
	}
	return grid, nil
}

// regionRect переводит область в прямоугольник image.Rectangle.
func regionRect(r entity.Region) image.Rectangle {
	return image.Rect(r.XStart, r.YStart, r.XStop, r.YStop)
}
