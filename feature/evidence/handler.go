package evidence

import (
	"errors"
	"strconv"

	"asset-inventory/core/logger"
	"asset-inventory/feature/criticality"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for asset evidence.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the evidence routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets/:id/evidence")
	group.Post("/", h.HandleUpload)
	group.Get("/", h.HandleList)
	group.Delete("/:name", h.HandleDelete)
}

// HandleUpload stores an evidence file for an asset.
// @Summary Upload Evidence
// @Description Uploads a file to the bucket under evidence/<asset>/ and links its URL to the asset.
// @Tags evidence
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Asset ID"
// @Param file formData file true "Evidence file"
// @Success 201 {object} evidence.Item "Stored Evidence"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/{id}/evidence [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	assetID, err := parseAssetID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	header, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing file field"})
	}
	file, err := header.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unreadable file"})
	}
	defer file.Close()

	item, err := h.service.Upload(c.Context(), assetID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		return h.fail(c, l, "Evidence upload failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleList lists the evidence of an asset.
// @Summary List Evidence
// @Tags evidence
// @Produce json
// @Param id path int true "Asset ID"
// @Success 200 {array} evidence.Item "Evidence"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/{id}/evidence [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	assetID, err := parseAssetID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.service.List(c.Context(), assetID)
	if err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Evidence listing failed", err)
	}
	return c.JSON(items)
}

// HandleDelete removes one evidence object.
// @Summary Delete Evidence
// @Tags evidence
// @Param id path int true "Asset ID"
// @Param name path string true "Evidence object name"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/{id}/evidence/{name} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	assetID, err := parseAssetID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.Delete(c.Context(), assetID, c.Params("name")); err != nil {
		return h.fail(c, logger.WithRayID(h.service.logger, c), "Evidence removal failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	switch {
	case errors.Is(err, criticality.ErrAssetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidName):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func parseAssetID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid asset id")
	}
	return uint(id), nil
}
