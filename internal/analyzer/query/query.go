package query

import (
	"plan-analyzer/internal/analyzer/geometry"
	"plan-analyzer/internal/analyzer/models"
)

// ============================================================
// Room lookup
// ============================================================

// FindRoom возвращает указатель на комнату внутри документа (первое
// совпадение по id) или nil. nil — нормальный исход, не ошибка.
func FindRoom(a *models.Apartment, id string) *models.Room {
	for i := range a.Rooms {
		if a.Rooms[i].ID == id {
			return &a.Rooms[i]
		}
	}
	return nil
}

// RoomsByType отбирает комнаты по точному совпадению типа, порядок
// документа сохраняется.
func RoomsByType(a *models.Apartment, roomType string) []models.Room {
	matched := []models.Room{}
	for _, room := range a.Rooms {
		if room.Type == roomType {
			matched = append(matched, room)
		}
	}
	return matched
}

// AdjacentRooms — все комнаты, смежные с указанной. Неизвестный id
// дает пустой список.
func AdjacentRooms(a *models.Apartment, id string) []models.Room {
	target := FindRoom(a, id)
	adjacent := []models.Room{}
	if target == nil {
		return adjacent
	}

	for i := range a.Rooms {
		if &a.Rooms[i] == target {
			continue
		}
		if geometry.AreAdjacent(*target, a.Rooms[i]) {
			adjacent = append(adjacent, a.Rooms[i])
		}
	}
	return adjacent
}
