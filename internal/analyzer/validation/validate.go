package validation

import (
	"fmt"
	"strings"

	"plan-analyzer/internal/analyzer/geometry"
	"plan-analyzer/internal/analyzer/models"
)

// ============================================================
// Plan Validation
// ============================================================

// Result — накопленные диагностики одного прогона. Errors делают
// документ непригодным для геометрии, Warnings — подозрительные, но
// допустимые места; на Valid они не влияют.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate прогоняет все проверки и собирает каждую найденную проблему,
// без раннего выхода. Никогда не возвращает ошибку сам по себе.
func Validate(a *models.Apartment) Result {
	errs := []string{}
	warns := []string{}

	if a.Meta == nil {
		errs = append(errs, "Missing meta section")
	}

	if len(a.Rooms) == 0 {
		errs = append(errs, "No rooms defined")
	}

	if dups := duplicateIDs(a.Rooms); len(dups) > 0 {
		errs = append(errs, "Duplicate room ids: "+strings.Join(dups, ", "))
	}

	for i, room := range a.Rooms {
		errs, warns = checkRoom(i, room, errs, warns)
	}

	warns = append(warns, overlapWarnings(a.Rooms)...)

	return Result{
		Valid:    len(errs) == 0,
		Errors:   errs,
		Warnings: warns,
	}
}

// duplicateIDs возвращает запись на каждое повторное вхождение id:
// id, встреченный трижды, попадает в список дважды. Кратность
// сохраняется умышленно — она показывает масштаб проблемы.
func duplicateIDs(rooms []models.Room) []string {
	seen := map[string]struct{}{}
	var dups []string

	for _, room := range rooms {
		if room.ID == "" {
			continue // отсутствие id — отдельная ошибка
		}
		if _, ok := seen[room.ID]; ok {
			dups = append(dups, room.ID)
		} else {
			seen[room.ID] = struct{}{}
		}
	}
	return dups
}

func checkRoom(index int, room models.Room, errs, warns []string) ([]string, []string) {
	label := roomLabel(index, room)

	if room.ID == "" {
		errs = append(errs, fmt.Sprintf("Room at index %d: missing id", index))
	}

	if room.Bounds == nil {
		errs = append(errs, fmt.Sprintf("Room %s: missing bounds", label))
	} else {
		if room.Bounds.Width <= 0 {
			errs = append(errs, fmt.Sprintf("Room %s: width must be positive", label))
		}
		if room.Bounds.Height <= 0 {
			errs = append(errs, fmt.Sprintf("Room %s: height must be positive", label))
		}
	}

	for _, opening := range room.Openings {
		// Обе проверки независимы: проем с кривой стороной все равно
		// проверяется на выход за габарит.
		if !opening.Wall.Valid() {
			errs = append(errs, fmt.Sprintf("Room %s: invalid opening wall %q", label, string(opening.Wall)))
		}
		if room.Bounds != nil {
			extent := room.Bounds.Height
			if opening.Wall.Horizontal() {
				extent = room.Bounds.Width
			}
			if extent < opening.Position+opening.Width {
				warns = append(warns, fmt.Sprintf("Room %s: opening extends beyond wall", label))
			}
		}
	}

	return errs, warns
}

// overlapWarnings проверяет все неупорядоченные пары; в сообщении
// комнаты идут в порядке документа.
func overlapWarnings(rooms []models.Room) []string {
	var warns []string
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			if rooms[i].Bounds == nil || rooms[j].Bounds == nil {
				continue
			}
			if geometry.RoomsOverlap(rooms[i], rooms[j]) {
				warns = append(warns, fmt.Sprintf("Rooms %s and %s overlap", rooms[i].ID, rooms[j].ID))
			}
		}
	}
	return warns
}

func roomLabel(index int, room models.Room) string {
	if room.ID != "" {
		return room.ID
	}
	return fmt.Sprintf("#%d", index)
}
