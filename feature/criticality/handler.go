package criticality

import (
	"errors"
	"strconv"

	"asset-inventory/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the criticality ledger.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the criticality routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/criticality")
	group.Post("/sync", h.HandleSync)
	group.Get("/judgments", h.HandleJudgments)
	group.Get("/records", h.HandleListRecords)
	group.Patch("/records/:id/resolve", h.HandleResolveRecord)
}

// ResolveRequest is the body of a resolve call.
type ResolveRequest struct {
	Notes string `json:"notes"`
}

// HandleSync runs a synchronization.
// @Summary Synchronize Criticality Ledger
// @Description Scores every asset, reconciles the ledger and restores the critical flags. Use dry_run to only compute the plan.
// @Tags criticality
// @Accept json
// @Produce json
// @Param dry_run query bool false "Compute the plan without applying it"
// @Success 200 {object} criticality.Result "Run Result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /criticality/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	dryRun, err := parseBoolQuery(c, "dry_run")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.service.Synchronize(c.Context(), dryRun)
	if err != nil {
		l.Error("Criticality sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// HandleJudgments returns the current judgment set.
// @Summary Evaluate Assets
// @Description Scores every asset and returns the qualifying ones. Nothing is written.
// @Tags criticality
// @Produce json
// @Success 200 {array} criticality.Judgment "Judgments"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /criticality/judgments [get]
func (h *Handler) HandleJudgments(c *fiber.Ctx) error {
	judgments, err := h.service.Judgments(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Evaluation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(judgments)
}

// HandleListRecords lists the ledger.
// @Summary List Criticality Records
// @Tags criticality
// @Produce json
// @Param resolved query bool false "Filter by resolution state"
// @Success 200 {array} models.CriticalityRecord "Records"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /criticality/records [get]
func (h *Handler) HandleListRecords(c *fiber.Ctx) error {
	var filter *bool
	if raw := c.Query("resolved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resolved filter"})
		}
		filter = &v
	}

	records, err := h.service.Records(c.Context(), filter)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Listing records failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}

// HandleResolveRecord marks a record as resolved.
// @Summary Resolve Criticality Record
// @Description Marks a record as remediated. Resolved records are never changed by synchronization.
// @Tags criticality
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param body body ResolveRequest false "Resolution notes"
// @Success 200 {object} models.CriticalityRecord "Resolved Record"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /criticality/records/{id}/resolve [patch]
func (h *Handler) HandleResolveRecord(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid record id"})
	}

	var req ResolveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
	}

	record, err := h.service.Resolve(c.Context(), uint(id), req.Notes)
	switch {
	case errors.Is(err, ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrRecordResolved):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Resolving record failed", zap.Uint64("record_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(record)
}

func parseBoolQuery(c *fiber.Ctx, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New("invalid " + name + " parameter")
	}
	return v, nil
}
