package geometry

import (
	"math"

	"plan-analyzer/internal/analyzer/models"
)

// ============================================================
// Geometry
// ============================================================

// Функции этого пакета предполагают корректный документ (bounds на месте,
// размеры положительные) — вызывающий прогоняет validation до геометрии.

// RoomArea — площадь комнаты.
func RoomArea(room models.Room) float64 {
	return room.Bounds.Width * room.Bounds.Height
}

// TotalArea — суммарная площадь всех комнат, 0 для пустого плана.
func TotalArea(a *models.Apartment) float64 {
	var total float64
	for _, room := range a.Rooms {
		total += RoomArea(room)
	}
	return total
}

// RoomPerimeter — периметр комнаты.
func RoomPerimeter(room models.Room) float64 {
	return 2 * (room.Bounds.Width + room.Bounds.Height)
}

// WallLengths суммирует длины стен по типу. Северные и южные стены
// считаются по ширине комнаты, восточные и западные — по высоте.
// Три основных типа присутствуют в результате всегда, даже нулевые;
// стены типа none не учитываются.
func WallLengths(a *models.Apartment) map[models.WallType]float64 {
	totals := map[models.WallType]float64{
		models.WallBuilding: 0,
		models.WallExterior: 0,
		models.WallInterior: 0,
	}

	for _, room := range a.Rooms {
		for _, wall := range room.Walls {
			if wall.Type == models.WallNone {
				continue
			}
			if wall.Side.Horizontal() {
				totals[wall.Type] += room.Bounds.Width
			} else {
				totals[wall.Type] += room.Bounds.Height
			}
		}
	}

	return totals
}

// ============================================================
// Bounding box
// ============================================================

type BoundingBox struct {
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	MaxX   float64 `json:"max_x"`
	MaxY   float64 `json:"max_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlanBounds — общий габарит плана по всем комнатам. Для плана без
// комнат границы остаются бесконечными, вызывающий обязан проверить
// список комнат заранее.
func PlanBounds(a *models.Apartment) BoundingBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	for _, room := range a.Rooms {
		b := room.Bounds
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+b.Width)
		maxY = math.Max(maxY, b.Y+b.Height)
	}

	return BoundingBox{
		MinX:   minX,
		MinY:   minY,
		MaxX:   maxX,
		MaxY:   maxY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// ============================================================
// Pairwise relations
// ============================================================

// AreAdjacent — комнаты смежны, если ребра совпадают точно (без
// допуска) и проекции на общую ось пересекаются на положительной длине.
func AreAdjacent(roomA, roomB models.Room) bool {
	a, b := roomA.Bounds, roomB.Bounds

	touchX := a.X+a.Width == b.X || b.X+b.Width == a.X
	if touchX && overlapLength(a.Y, a.Height, b.Y, b.Height) > 0 {
		return true
	}

	touchY := a.Y+a.Height == b.Y || b.Y+b.Height == a.Y
	return touchY && overlapLength(a.X, a.Width, b.X, b.Width) > 0
}

// RoomsOverlap — пересечение с положительной площадью; касание по
// ребру пересечением не считается.
func RoomsOverlap(roomA, roomB models.Room) bool {
	a, b := roomA.Bounds, roomB.Bounds
	return !(a.X+a.Width <= b.X ||
		b.X+b.Width <= a.X ||
		a.Y+a.Height <= b.Y ||
		b.Y+b.Height <= a.Y)
}

// overlapLength — длина пересечения двух отрезков [start, start+length).
func overlapLength(startA, lengthA, startB, lengthB float64) float64 {
	return math.Min(startA+lengthA, startB+lengthB) - math.Max(startA, startB)
}
