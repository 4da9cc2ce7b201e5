package report

import (
	"fmt"
	"strconv"
	"strings"

	"plan-analyzer/internal/analyzer/geometry"
	"plan-analyzer/internal/analyzer/models"
)

// ============================================================
// Markdown Report
// ============================================================

// Generate собирает Markdown-отчет по плану. Все числа берутся из
// geometry, отчет сам ничего не пересчитывает.
func Generate(a *models.Apartment) string {
	var builder strings.Builder

	title := a.MetaName()
	if title == "" {
		title = "Floor Plan"
	}
	builder.WriteString("# " + title + "\n\n")

	bounds := geometry.PlanBounds(a)
	builder.WriteString("## Overall\n\n")
	builder.WriteString(fmt.Sprintf("- Dimensions: %.2f x %.2f\n", bounds.Width, bounds.Height))
	builder.WriteString(fmt.Sprintf("- Total area: %.2f\n", geometry.TotalArea(a)))
	builder.WriteString("\n")

	builder.WriteString("## Rooms\n\n")
	for _, room := range a.Rooms {
		writeRoom(&builder, room)
	}

	lengths := geometry.WallLengths(a)
	builder.WriteString("## Walls\n\n")
	builder.WriteString(fmt.Sprintf("- Building: %.2f\n", lengths[models.WallBuilding]))
	builder.WriteString(fmt.Sprintf("- Exterior: %.2f\n", lengths[models.WallExterior]))
	builder.WriteString(fmt.Sprintf("- Interior: %.2f\n", lengths[models.WallInterior]))

	return builder.String()
}

func writeRoom(builder *strings.Builder, room models.Room) {
	builder.WriteString("### " + room.Name + "\n\n")
	builder.WriteString("- Type: " + room.Type + "\n")

	b := room.Bounds
	builder.WriteString(fmt.Sprintf("- Size: %s x %s\n", formatFloat(b.Width), formatFloat(b.Height)))
	builder.WriteString(fmt.Sprintf("- Area: %.2f\n", geometry.RoomArea(room)))
	builder.WriteString(fmt.Sprintf("- Position: (%s, %s)\n", formatFloat(b.X), formatFloat(b.Y)))

	if len(room.Openings) > 0 {
		types := make([]string, 0, len(room.Openings))
		for _, opening := range room.Openings {
			types = append(types, opening.Type)
		}
		builder.WriteString("- Openings: " + strings.Join(types, ", ") + "\n")
	}

	builder.WriteString("\n")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ============================================================
// Simple Format Export
// ============================================================

// SimpleRecord — плоская запись для выгрузки во внешний CAD-импорт.
// Walls и Openings отдаются теми же слайсами, без копии.
type SimpleRecord struct {
	Name     string           `json:"name"`
	Type     string           `json:"type"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Area     float64          `json:"area"`
	Walls    []models.Wall    `json:"walls"`
	Openings []models.Opening `json:"openings"`
}

// SimpleFormat — одна запись на комнату, в порядке документа.
func SimpleFormat(a *models.Apartment) []SimpleRecord {
	records := make([]SimpleRecord, 0, len(a.Rooms))
	for _, room := range a.Rooms {
		records = append(records, SimpleRecord{
			Name:     room.Name,
			Type:     room.Type,
			X:        room.Bounds.X,
			Y:        room.Bounds.Y,
			Width:    room.Bounds.Width,
			Height:   room.Bounds.Height,
			Area:     geometry.RoomArea(room),
			Walls:    room.Walls,
			Openings: room.Openings,
		})
	}
	return records
}
