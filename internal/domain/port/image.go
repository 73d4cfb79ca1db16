package port

import "nutrient-bot/internal/domain/entity"

// ImageDecoder превращает байты снимка в RGB-сетку
type ImageDecoder interface {
	// Decode возвращает entity.ErrInvalidInput, если байты не являются изображением
	Decode(imageData []byte) (*entity.PixelGrid, error)
}

// RegionHighlighter создаёт превью с подсветкой найденных областей
type RegionHighlighter interface {
	Highlight(imageData []byte, regions []entity.Region) ([]byte, error)
}
