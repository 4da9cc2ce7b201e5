package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"plan-analyzer/internal/analyzer/models"
	"plan-analyzer/internal/analyzer/repository"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ============================================================
// Plan Handler
// ============================================================

type PlanHandler struct {
	repo   *repository.Repository
	tracer trace.Tracer
}

func NewPlanHandler(repo *repository.Repository, tracer trace.Tracer) *PlanHandler {
	return &PlanHandler{
		repo:   repo,
		tracer: tracer,
	}
}

// CreatePlan принимает документ плана в JSON и сохраняет под новым id.
func (h *PlanHandler) CreatePlan(c fiber.Ctx) error {
	doc, ok := parseApartment(c)
	if !ok {
		return nil
	}

	id := uuid.NewString()
	name := doc.MetaName()

	if err := h.repo.Save(context.Background(), id, name, doc); err != nil {
		log.Printf("[PLANS] Save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save plan"})
	}

	log.Printf("[PLANS] Stored plan %s (%q, %d rooms)", id, name, len(doc.Rooms))
	return c.Status(http.StatusCreated).JSON(fiber.Map{"id": id, "name": name})
}

// ListPlans отдает сводку по сохраненным планам.
func (h *PlanHandler) ListPlans(c fiber.Ctx) error {
	plans, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[PLANS] List error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list plans"})
	}
	return c.JSON(plans)
}

// GetPlan отдает сохраненный документ как есть.
func (h *PlanHandler) GetPlan(c fiber.Ctx) error {
	doc, err := h.repo.Get(context.Background(), c.Params("id"))
	if err != nil {
		return planError(c, err)
	}
	return c.JSON(doc)
}

// DeletePlan удаляет план.
func (h *PlanHandler) DeletePlan(c fiber.Ctx) error {
	if err := h.repo.Delete(context.Background(), c.Params("id")); err != nil {
		return planError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// ============================================================
// Helpers
// ============================================================

// parseApartment разбирает тело запроса; при ошибке сам пишет ответ
// и возвращает ok=false.
func parseApartment(c fiber.Ctx) (*models.Apartment, bool) {
	if len(c.Body()) == 0 {
		_ = c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
		return nil, false
	}

	var doc models.Apartment
	if err := json.Unmarshal(c.Body(), &doc); err != nil {
		_ = c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		return nil, false
	}
	return &doc, true
}

func planError(c fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "plan not found"})
	}
	log.Printf("[PLANS] Repository error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "storage error"})
}
