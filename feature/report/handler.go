package report

import (
	"bytes"
	"strconv"

	"asset-inventory/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/critical", h.HandleCriticalReport)
}

// HandleCriticalReport synchronizes the ledger and returns the consolidated report.
// @Summary Critical Assets Report
// @Description Runs a synchronization, then lists the ledger joined with asset data. Optionally archives the CSV in the bucket.
// @Tags reports
// @Produce json
// @Produce text/csv
// @Param format query string false "json (default) or csv"
// @Param include_resolved query bool false "Include resolved records"
// @Param archive query bool false "Store the CSV under reports/ in the bucket"
// @Success 200 {object} report.Report "Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reports/critical [get]
func (h *Handler) HandleCriticalReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	format := c.Query("format", "json")
	if format != "json" && format != "csv" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "format must be json or csv"})
	}
	includeResolved, err := strconv.ParseBool(c.Query("include_resolved", "false"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid include_resolved parameter"})
	}
	archive, err := strconv.ParseBool(c.Query("archive", "false"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid archive parameter"})
	}

	ctx := c.Context()
	rep, err := h.service.Generate(ctx, Options{IncludeResolved: includeResolved})
	if err != nil {
		l.Error("Report generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if archive {
		key, err := h.service.Archive(ctx, rep)
		if err != nil {
			l.Error("Report archive failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set("X-Report-Key", key)
	}

	if format == "csv" {
		var buf bytes.Buffer
		if err := WriteCSV(&buf, rep); err != nil {
			l.Error("Report rendering failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="critical-assets.csv"`)
		return c.Send(buf.Bytes())
	}

	return c.JSON(rep)
}
