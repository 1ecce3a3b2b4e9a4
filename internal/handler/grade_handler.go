package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/observability"
	"github.com/avalon-edu/campus-api/internal/service"
	"github.com/avalon-edu/campus-api/internal/utils"
)

// GradeHandler exposes the grade ledger over HTTP.
type GradeHandler struct {
	ledger service.GradeLedgerService
	logger zerolog.Logger
}

// NewGradeHandler builds a grade handler instance.
func NewGradeHandler(ledger service.GradeLedgerService, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		ledger: ledger,
		logger: logger.With().Str("component", "grade_handler").Logger(),
	}
}

// Register attaches the read routes to the provided router group.
func (h *GradeHandler) Register(router fiber.Router) {
	router.Get("/students/:studentID", h.list)
	router.Get("/students/:studentID/courses/:courseID/average", h.courseAverage)
	router.Get("/students/:studentID/gpa", h.gpa)
}

// RegisterWrites attaches the grade recording route; callers guard it with
// the grades:record capability.
func (h *GradeHandler) RegisterWrites(router fiber.Router) {
	router.Post("", h.record)
}

func (h *GradeHandler) record(c *fiber.Ctx) error {
	var payload dto.RecordGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.ledger.RecordGrade(c.Context(), payload, activityActorFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	observability.GradesRecorded().Inc()

	return utils.SendSuccess(c, "grade recorded", response)
}

func (h *GradeHandler) list(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	courseID, err := parseQueryUint(c, "course_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	grades, err := h.ledger.ListGrades(c.Context(), studentID, courseID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) courseAverage(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	courseID, err := parseUintParam(c, "courseID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	average, err := h.ledger.CourseAverage(c.Context(), studentID, courseID)
	if err != nil {
		return h.handleError(c, err)
	}

	response := dto.CourseAverageResponse{
		StudentID: studentID,
		CourseID:  courseID,
		Average:   average,
	}
	if average != nil {
		letter := service.LetterGrade(*average)
		response.LetterGrade = &letter
	}

	return utils.SendSuccess(c, "course average computed", response)
}

func (h *GradeHandler) gpa(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentID")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	response, err := h.ledger.GPA(c.Context(), studentID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "gpa computed", response)
}

func (h *GradeHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrGradeOutOfRange):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
	case errors.Is(err, service.ErrAssignmentCourseMismatch):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrGradeSyncFailed):
		return utils.SendError(c, fiber.StatusConflict, "grade could not be recorded, please retry")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
