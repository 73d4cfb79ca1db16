//go:build gocv
// +build gocv

package vision

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"nutrient-bot/internal/domain/entity"
	"nutrient-bot/internal/domain/port"
)

// Decoder декодирует снимки через OpenCV.
type Decoder struct {
	LineWidth   int
	JPEGQuality int
	MaxSide     int
	MaxPixels   int
}

// NewDecoder создаёт декодер на OpenCV.
func NewDecoder() *Decoder {
	return &Decoder{
		LineWidth:   2,
		JPEGQuality: 90,
		MaxSide:     DefaultMaxSide,
		MaxPixels:   DefaultMaxPixels,
	}
}

// Decode превращает байты изображения в RGB-сетку.
func (d *Decoder) Decode(imageData []byte) (*entity.PixelGrid, error) {
	mat, err := d.decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	// ToImage сам переставляет каналы BGR -> RGB.
	img, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert mat: %v: %w", err, entity.ErrInvalidInput)
	}
	return gridFromImage(img)
}

// Highlight рисует прямоугольники вокруг областей и возвращает JPEG.
func (d *Decoder) Highlight(imageData []byte, regions []entity.Region) ([]byte, error) {
	mat, err := d.decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	for _, r := range regions {
		gocv.Rectangle(&mat, regionRect(r), highlightColor, d.LineWidth)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat, []int{int(gocv.IMWriteJpegQuality), d.JPEGQuality})
	if err != nil {
		return nil, err
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
// Размеры известных форматов проверяются по заголовку, остальных — после декодирования.
func (d *Decoder) decodeToMat(imageData []byte) (gocv.Mat, error) {
	headerErr := checkHeader(imageData, d.MaxSide, d.MaxPixels)
	if headerErr != nil && !errors.Is(headerErr, image.ErrFormat) {
		return gocv.NewMat(), headerErr
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		if err := checkSize(mat.Cols(), mat.Rows(), d.MaxSide, d.MaxPixels); err != nil {
			mat.Close()
			return gocv.NewMat(), err
		}
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), fmt.Errorf("failed to decode image: %w", entity.ErrInvalidInput)
}

// Проверка реализации интерфейсов
var (
	_ port.ImageDecoder      = (*Decoder)(nil)
	_ port.RegionHighlighter = (*Decoder)(nil)
)
