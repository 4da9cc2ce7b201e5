package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"plan-analyzer/internal/analyzer/geometry"
	"plan-analyzer/internal/analyzer/models"
	"plan-analyzer/internal/analyzer/query"
	"plan-analyzer/internal/analyzer/report"
	"plan-analyzer/internal/analyzer/validation"

	"github.com/gofiber/fiber/v3"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Analysis Handler
// ============================================================

type planSummary struct {
	Bounds      geometry.BoundingBox        `json:"bounds"`
	TotalArea   float64                     `json:"total_area"`
	RoomCount   int                         `json:"room_count"`
	WallLengths map[models.WallType]float64 `json:"wall_lengths"`
}

// Report отдает Markdown-отчет по сохраненному плану.
func (h *PlanHandler) Report(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.report")
	defer span.End()

	doc, err := h.repo.Get(ctx, c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	span.SetAttributes(attribute.Int("plan.rooms", len(doc.Rooms)))

	if !requireValid(c, doc) {
		return nil
	}

	c.Set("Content-Type", "text/markdown; charset=utf-8")
	return c.SendString(report.Generate(doc))
}

// Summary отдает габариты, площадь и длины стен.
func (h *PlanHandler) Summary(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.summary")
	defer span.End()

	doc, err := h.repo.Get(ctx, c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	if !requireValid(c, doc) {
		return nil
	}
	return respondSummary(c, doc)
}

// Validate прогоняет все проверки плана.
func (h *PlanHandler) Validate(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.validate")
	defer span.End()

	doc, err := h.repo.Get(ctx, c.Params("id"))
	if err != nil {
		return planError(c, err)
	}

	result := validation.Validate(doc)
	span.SetAttributes(
		attribute.Bool("plan.valid", result.Valid),
		attribute.Int("plan.errors", len(result.Errors)),
	)
	return c.JSON(result)
}

// Export отдает план в плоском формате для CAD-импорта.
func (h *PlanHandler) Export(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.export")
	defer span.End()

	doc, err := h.repo.Get(ctx, c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	if !requireValid(c, doc) {
		return nil
	}
	return c.JSON(report.SimpleFormat(doc))
}

// ============================================================
// Room queries
// ============================================================

// Rooms возвращает комнаты плана, с фильтром ?type= при наличии.
func (h *PlanHandler) Rooms(c fiber.Ctx) error {
	doc, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}

	if roomType := c.Query("type"); roomType != "" {
		return c.JSON(query.RoomsByType(doc, roomType))
	}
	return c.JSON(doc.Rooms)
}

// GetRoom возвращает одну комнату по id.
func (h *PlanHandler) GetRoom(c fiber.Ctx) error {
	doc, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}

	room := query.FindRoom(doc, c.Params("roomID"))
	if room == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "room not found"})
	}
	return c.JSON(room)
}

// AdjacentRooms возвращает соседей комнаты по общим ребрам.
func (h *PlanHandler) AdjacentRooms(c fiber.Ctx) error {
	doc, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	if !requireValid(c, doc) {
		return nil
	}
	return c.JSON(query.AdjacentRooms(doc, c.Params("roomID")))
}

// ============================================================
// Room mutations
// ============================================================

type moveRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// MoveRoom сдвигает комнату и сохраняет документ. Неизвестная комната —
// no-op, документ остается прежним.
func (h *PlanHandler) MoveRoom(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.move_room")
	defer span.End()

	var req moveRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	planID := c.Params("id")
	doc, err := h.repo.Get(ctx, planID)
	if err != nil {
		return planError(c, err)
	}

	if !requireValid(c, doc) {
		return nil
	}

	doc = query.MoveRoom(doc, c.Params("roomID"), req.DX, req.DY)

	if err := h.repo.Save(ctx, planID, doc.MetaName(), doc); err != nil {
		log.Printf("[PLANS] Save after move error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save plan"})
	}
	return c.JSON(doc)
}

// ResizeRoom задает комнате новые размеры и сохраняет документ.
// Размеры пишутся как есть — корректность проверяет validate.
func (h *PlanHandler) ResizeRoom(c fiber.Ctx) error {
	ctx, span := h.tracer.Start(context.Background(), "plan.resize_room")
	defer span.End()

	var req resizeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	planID := c.Params("id")
	doc, err := h.repo.Get(ctx, planID)
	if err != nil {
		return planError(c, err)
	}

	if !requireValid(c, doc) {
		return nil
	}

	doc = query.ResizeRoom(doc, c.Params("roomID"), req.Width, req.Height)

	if err := h.repo.Save(ctx, planID, doc.MetaName(), doc); err != nil {
		log.Printf("[PLANS] Save after resize error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save plan"})
	}
	return c.JSON(doc)
}

// ============================================================
// Stateless analysis
// ============================================================

// Эти ручки принимают документ прямо в теле запроса — для хостов,
// которые хранят планы сами.

// AnalyzeReport строит отчет по документу из тела запроса.
func (h *PlanHandler) AnalyzeReport(c fiber.Ctx) error {
	doc, ok := parseApartment(c)
	if !ok {
		return nil
	}
	if !requireValid(c, doc) {
		return nil
	}

	c.Set("Content-Type", "text/markdown; charset=utf-8")
	return c.SendString(report.Generate(doc))
}

// AnalyzeValidate валидирует документ из тела запроса.
func (h *PlanHandler) AnalyzeValidate(c fiber.Ctx) error {
	doc, ok := parseApartment(c)
	if !ok {
		return nil
	}
	return c.JSON(validation.Validate(doc))
}

// AnalyzeSummary считает сводку по документу из тела запроса.
func (h *PlanHandler) AnalyzeSummary(c fiber.Ctx) error {
	doc, ok := parseApartment(c)
	if !ok {
		return nil
	}
	if !requireValid(c, doc) {
		return nil
	}
	return respondSummary(c, doc)
}

// AnalyzeExport выгружает документ из тела запроса в плоском формате.
func (h *PlanHandler) AnalyzeExport(c fiber.Ctx) error {
	doc, ok := parseApartment(c)
	if !ok {
		return nil
	}
	if !requireValid(c, doc) {
		return nil
	}
	return c.JSON(report.SimpleFormat(doc))
}

// requireValid прогоняет validate перед геометрией: движок не
// защищается от битых документов, это обязанность вызывающего.
// При ошибках пишет 422 с диагностиками и возвращает false.
func requireValid(c fiber.Ctx, doc *models.Apartment) bool {
	result := validation.Validate(doc)
	if !result.Valid {
		_ = c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      "plan failed validation",
			"validation": result,
		})
		return false
	}
	return true
}

// respondSummary вызывается только после requireValid: пустой план
// отсеян, PlanBounds конечен и кодируется в JSON.
func respondSummary(c fiber.Ctx, doc *models.Apartment) error {
	return c.JSON(planSummary{
		Bounds:      geometry.PlanBounds(doc),
		TotalArea:   geometry.TotalArea(doc),
		RoomCount:   len(doc.Rooms),
		WallLengths: geometry.WallLengths(doc),
	})
}
