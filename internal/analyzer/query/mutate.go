package query

import "plan-analyzer/internal/analyzer/models"

// ============================================================
// In-place mutations
// ============================================================

// Мутации пишут прямо в документ вызывающего, без копии и без
// блокировок: сериализацию конкурентного доступа обеспечивает владелец
// документа. Обе операции молча игнорируют неизвестный id и возвращают
// тот же документ для чейнинга.

// MoveRoom сдвигает комнату на dx/dy.
func MoveRoom(a *models.Apartment, id string, dx, dy float64) *models.Apartment {
	if room := FindRoom(a, id); room != nil {
		room.Bounds.X += dx
		room.Bounds.Y += dy
	}
	return a
}

// ResizeRoom записывает новые размеры как есть, без проверки знака:
// некорректный размер всплывет на следующем validation-прогоне.
func ResizeRoom(a *models.Apartment, id string, width, height float64) *models.Apartment {
	if room := FindRoom(a, id); room != nil {
		room.Bounds.Width = width
		room.Bounds.Height = height
	}
	return a
}
