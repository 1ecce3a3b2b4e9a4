package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/service"
	"github.com/avalon-edu/campus-api/internal/utils"
)

// DashboardHandler serves the student and parent dashboard endpoints.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler builds a dashboard handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/students/:studentID", h.student)
	router.Get("/parents/:parentID", h.parent)
}

// RegisterAdmin attaches the school-wide overview; callers guard it with the
// admin overview capability.
func (h *DashboardHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/admin", h.admin)
}

func (h *DashboardHandler) admin(c *fiber.Ctx) error {
	overview, err := h.service.AdminOverview(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build admin overview")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "overview retrieved", overview)
}

func (h *DashboardHandler) student(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	dashboard, err := h.service.StudentDashboard(c.Context(), studentID)
	if err != nil {
		h.logger.Error().Err(err).Uint("student_id", studentID).Msg("failed to build student dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *DashboardHandler) parent(c *fiber.Ctx) error {
	parentID, err := parseUintParam(c, "parentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	dashboard, err := h.service.ParentDashboard(c.Context(), parentID)
	if err != nil {
		h.logger.Error().Err(err).Uint("parent_id", parentID).Msg("failed to build parent dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
