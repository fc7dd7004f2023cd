package history

import (
	"errors"
	"strconv"

	historystore "dependency-manager/core/history"
	"dependency-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxLimit = 200

// Handler handles HTTP requests for history and plans.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/history")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	app.Get("/plan", h.HandlePlan)
}

// HandleList returns recent passes.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	limit := historystore.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must be a positive integer"})
		}
		limit = min(n, maxLimit)
	}

	passes, err := h.service.List(c.Context(), limit)
	if err != nil {
		return h.fail(c, l, "List passes failed", err)
	}
	return c.JSON(fiber.Map{"passes": passes})
}

// HandleGet returns one pass.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	pass, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, l, "Get pass failed", err)
	}
	return c.JSON(pass)
}

// HandlePlan returns the current dry-run plan.
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	plan, err := h.service.Plan(c.Context(), c.Query("refresh") == "true")
	if err != nil {
		return h.fail(c, l, "Plan failed", err)
	}
	l.Info("Plan served",
		zap.Int("total", plan.Summary.Total),
		zap.Int("pending", plan.Summary.Pending))
	return c.JSON(plan)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, historystore.ErrPassNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		status = fiber.StatusServiceUnavailable
	default:
		l.Error(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
