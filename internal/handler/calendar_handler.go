package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/service"
	"github.com/avalon-edu/campus-api/internal/utils"
)

// CalendarHandler manages school calendar endpoints.
type CalendarHandler struct {
	service service.CalendarService
	logger  zerolog.Logger
}

// NewCalendarHandler builds a calendar handler instance.
func NewCalendarHandler(service service.CalendarService, logger zerolog.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		logger:  logger.With().Str("component", "calendar_handler").Logger(),
	}
}

// Register attaches the read routes to the provided router group.
func (h *CalendarHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterWrites attaches the mutating routes; callers guard them with the
// calendar:manage capability.
func (h *CalendarHandler) RegisterWrites(router fiber.Router) {
	router.Post("", h.create)
	router.Delete("/:id", h.delete)
}

func (h *CalendarHandler) list(c *fiber.Ctx) error {
	from, err := parseQueryDate(c, "from")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	to, err := parseQueryDate(c, "to")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	// Default to the month around today when no range is given.
	now := time.Now().UTC()
	if from == nil {
		start := now.AddDate(0, 0, -7)
		from = &start
	}
	if to == nil {
		end := now.AddDate(0, 1, 0)
		to = &end
	}

	events, err := h.service.ListRange(c.Context(), *from, *to, c.Query("audience"))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "events retrieved", events)
}

func (h *CalendarHandler) create(c *fiber.Ctx) error {
	var payload dto.CalendarEventCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	event, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "event created", event)
}

func (h *CalendarHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "event deleted", nil)
}

func (h *CalendarHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrEventRange):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
