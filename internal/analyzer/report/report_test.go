package report

import (
	"strings"
	"testing"

	"plan-analyzer/internal/analyzer/geometry"
	"plan-analyzer/internal/analyzer/models"
)

func plan() *models.Apartment {
	return &models.Apartment{
		Meta: map[string]any{"name": "Studio 12"},
		Rooms: []models.Room{
			{
				ID:     "living",
				Name:   "Living Room",
				Type:   "living",
				Bounds: &models.Bounds{X: 0, Y: 0, Width: 3, Height: 4},
				Walls: []models.Wall{
					{Side: models.SideNorth, Type: models.WallExterior},
					{Side: models.SideEast, Type: models.WallInterior},
				},
				Openings: []models.Opening{
					{Wall: models.SideNorth, Type: "window", Position: 1, Width: 1},
					{Wall: models.SideEast, Type: "door", Position: 0.5, Width: 0.8},
				},
			},
			{
				ID:     "kitchen",
				Name:   "Kitchen",
				Type:   "kitchen",
				Bounds: &models.Bounds{X: 3, Y: 0, Width: 2, Height: 4},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	md := Generate(plan())

	for _, want := range []string{
		"# Studio 12",
		"- Dimensions: 5.00 x 4.00",
		"- Total area: 20.00",
		"### Living Room",
		"- Type: living",
		"- Size: 3 x 4",
		"- Area: 12.00",
		"- Position: (0, 0)",
		"- Openings: window, door",
		"### Kitchen",
		"- Exterior: 3.00",
		"- Interior: 4.00",
		"- Building: 0.00",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("report missing %q\n%s", want, md)
		}
	}
}

func TestGenerateWithoutMetaName(t *testing.T) {
	a := plan()
	a.Meta = nil

	if md := Generate(a); !strings.Contains(md, "# Floor Plan") {
		t.Errorf("fallback title missing:\n%s", md)
	}
}

func TestGenerateNoOpeningsLine(t *testing.T) {
	md := Generate(plan())

	// У кухни нет проемов — строки Openings в ее секции быть не должно
	kitchen := md[strings.Index(md, "### Kitchen"):]
	if idx := strings.Index(kitchen, "## Walls"); idx >= 0 {
		kitchen = kitchen[:idx]
	}
	if strings.Contains(kitchen, "Openings") {
		t.Errorf("kitchen section must not list openings:\n%s", kitchen)
	}
}

func TestSimpleFormat(t *testing.T) {
	a := plan()
	records := SimpleFormat(a)

	if len(records) != len(a.Rooms) {
		t.Fatalf("got %d records, want %d", len(records), len(a.Rooms))
	}

	for i, rec := range records {
		room := a.Rooms[i]
		if rec.Name != room.Name || rec.Type != room.Type {
			t.Errorf("record %d mismatch: %+v", i, rec)
		}
		if rec.Area != geometry.RoomArea(room) {
			t.Errorf("record %d area = %v, want %v", i, rec.Area, geometry.RoomArea(room))
		}
		if rec.X != room.Bounds.X || rec.Y != room.Bounds.Y {
			t.Errorf("record %d position mismatch: %+v", i, rec)
		}
	}
}

func TestSimpleFormatSharesSlices(t *testing.T) {
	a := plan()
	records := SimpleFormat(a)

	if len(records[0].Walls) == 0 || &records[0].Walls[0] != &a.Rooms[0].Walls[0] {
		t.Error("walls must be shared with the document, not copied")
	}
	if len(records[0].Openings) == 0 || &records[0].Openings[0] != &a.Rooms[0].Openings[0] {
		t.Error("openings must be shared with the document, not copied")
	}
}
