//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"

	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

// Decoder декодирует снимки средствами стандартной библиотеки и golang.org/x/image.
type Decoder struct {
	LineWidth   int
	JPEGQuality int
	MaxSide     int
	MaxPixels   int
}

// NewDecoder создаёт декодер без OpenCV.
func NewDecoder() *Decoder {
	return &Decoder{
		LineWidth:   2,
		JPEGQuality: 90,
		MaxSide:     DefaultMaxSide,
		MaxPixels:   DefaultMaxPixels,
	}
}

// Decode превращает байты JPEG/PNG/GIF/BMP/TIFF/WebP в RGB-сетку.
func (d *Decoder) Decode(imageData []byte) (*entity.PixelGrid, error) {
	img, err := d.decodeImage(imageData)
	if err != nil {
		return nil, err
	}
	return gridFromImage(img)
}

// Highlight рисует рамки вокруг областей и возвращает JPEG.
func (d *Decoder) Highlight(imageData []byte, regions []entity.Region) ([]byte, error) {
	src, err := d.decodeImage(imageData)
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)

	fill := image.NewUniform(highlightColor)
	for _, r := range regions {
		rect := regionRect(r)
		lw := min(d.LineWidth, rect.Dx(), rect.Dy())
		edges := []image.Rectangle{
			image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+lw),
			image.Rect(rect.Min.X, rect.Max.Y-lw, rect.Max.X, rect.Max.Y),
			image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+lw, rect.Max.Y),
			image.Rect(rect.Max.X-lw, rect.Min.Y, rect.Max.X, rect.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(canvas, e.Intersect(canvas.Bounds()), fill, image.Point{}, draw.Src)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: d.JPEGQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Decoder) decodeImage(imageData []byte) (image.Image, error) {
	if err := checkHeader(imageData, d.MaxSide, d.MaxPixels); err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("unknown image format: %w", entity.ErrInvalidInput)
		}
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v: %w", err, entity.ErrInvalidInput)
	}
	return img, nil
}

// Проверка реализации интерфейсов
var (
	_ port.ImageDecoder      = (*Decoder)(nil)
	_ port.RegionHighlighter = (*Decoder)(nil)
)
