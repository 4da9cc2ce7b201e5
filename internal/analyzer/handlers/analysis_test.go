package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"plan-analyzer/internal/analyzer/telemetry"
	"plan-analyzer/internal/analyzer/validation"

	"github.com/gofiber/fiber/v3"
)

func newApp() *fiber.App {
	app := fiber.New()
	h := NewPlanHandler(nil, telemetry.NoopTracer())

	app.Post("/analyze/report", h.AnalyzeReport)
	app.Post("/analyze/validate", h.AnalyzeValidate)
	app.Post("/analyze/summary", h.AnalyzeSummary)
	app.Post("/analyze/export", h.AnalyzeExport)
	return app
}

const planJSON = `{
	"meta": {"name": "Test Plan"},
	"rooms": [
		{"id": "r1", "name": "Hall", "type": "hallway", "bounds": {"x": 0, "y": 0, "width": 3, "height": 4}},
		{"id": "r2", "name": "Kitchen", "type": "kitchen", "bounds": {"x": 3, "y": 0, "width": 2, "height": 4}}
	]
}`

func post(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	return resp
}

func TestAnalyzeValidate(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/validate", planJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result validation.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !result.Valid {
		t.Errorf("plan should be valid: %+v", result)
	}
}

func TestAnalyzeValidateReportsErrors(t *testing.T) {
	app := newApp()

	broken := `{"rooms": [{"id": "r1", "bounds": {"width": -1, "height": 2}}, {"id": "r1", "bounds": {"width": 2, "height": 2}}]}`
	resp := post(t, app, "/analyze/validate", broken)

	var result validation.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Valid {
		t.Error("broken plan reported as valid")
	}
	joined := strings.Join(result.Errors, "\n")
	for _, want := range []string{"Missing meta section", "Duplicate room ids: r1", "width must be positive"} {
		if !strings.Contains(joined, want) {
			t.Errorf("errors missing %q: %v", want, result.Errors)
		}
	}
}

func TestAnalyzeReport(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/report", planJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	md := string(body)
	if !strings.Contains(md, "# Test Plan") || !strings.Contains(md, "### Kitchen") {
		t.Errorf("unexpected report:\n%s", md)
	}
}

func TestAnalyzeSummary(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/summary", planJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var summary struct {
		TotalArea float64 `json:"total_area"`
		RoomCount int     `json:"room_count"`
		Bounds    struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"bounds"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.TotalArea != 20 || summary.RoomCount != 2 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Bounds.Width != 5 || summary.Bounds.Height != 4 {
		t.Errorf("bounds = %+v", summary.Bounds)
	}
}

func TestAnalyzeSummaryEmptyPlan(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/summary", `{"meta": {"name": "Empty"}, "rooms": []}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestAnalyzeRejectsRoomWithoutBounds(t *testing.T) {
	// Комната без bounds непригодна для геометрии: ручки обязаны
	// отклонить документ диагностиками, а не падать внутри движка
	app := newApp()
	boundless := `{"meta": {"name": "P"}, "rooms": [{"id": "r1", "name": "A", "type": "x"}]}`

	for _, path := range []string{"/analyze/export", "/analyze/report", "/analyze/summary"} {
		resp := post(t, app, path, boundless)
		if resp.StatusCode != http.StatusUnprocessableEntity {
			t.Errorf("%s status = %d, want 422", path, resp.StatusCode)
			continue
		}

		var payload struct {
			Error      string            `json:"error"`
			Validation validation.Result `json:"validation"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			t.Fatalf("%s decode: %v", path, err)
		}
		if payload.Validation.Valid {
			t.Errorf("%s: document reported as valid", path)
		}
		if !strings.Contains(strings.Join(payload.Validation.Errors, "\n"), "Room r1: missing bounds") {
			t.Errorf("%s: missing bounds diagnostic absent: %v", path, payload.Validation.Errors)
		}
	}
}

func TestAnalyzeExport(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/export", planJSON)

	var records []struct {
		Name string  `json:"name"`
		Area float64 `json:"area"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Hall" || records[0].Area != 12 {
		t.Errorf("first record = %+v", records[0])
	}
}

func TestAnalyzeEmptyBody(t *testing.T) {
	app := newApp()

	resp := post(t, app, "/analyze/validate", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
