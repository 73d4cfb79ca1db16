package analysis

import "nutrient-bot/internal/domain/entity"

// Соседи по 4-связности: диагональные клетки в одну область не объединяются.
var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// LabelRegions находит связные области маски и возвращает их ограничивающие прямоугольники.
// Номера присваиваются с 1 в порядке обхода по строкам: область 1 — та,
// чья верхняя левая клетка встречается первой.
func LabelRegions(mask *entity.Mask) []entity.Region {
	regions := make([]entity.Region, 0)
	if mask == nil || mask.Width <= 0 || mask.Height <= 0 {
		return regions
	}

	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	queue := make([]int, 0, 64)

	for start, on := range mask.Cells {
		if !on || visited[start] {
			continue
		}

		region := entity.Region{
			Index:  len(regions) + 1,
			XStart: start % w,
			XStop:  start%w + 1,
			YStart: start / w,
			YStop:  start/w + 1,
		}

		// Обход в ширину захватывает всю компоненту.
		visited[start] = true
		queue = append(queue[:0], start)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			x, y := cur%w, cur/w

			region.XStart = min(region.XStart, x)
			region.XStop = max(region.XStop, x+1)
			region.YStart = min(region.YStart, y)
			region.YStop = max(region.YStop, y+1)

			for _, d := range neighbours {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				next := ny*w + nx
				if mask.Cells[next] && !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		regions = append(regions, region)
	}

	return regions
}
