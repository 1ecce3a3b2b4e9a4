package service

import (
	"context"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// AttendanceService records and summarizes per-day attendance.
type AttendanceService interface {
	Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) (dto.AttendanceResponse, error)
	List(ctx context.Context, filter repository.AttendanceFilter) ([]dto.AttendanceResponse, error)
	Summary(ctx context.Context, studentID uint, courseID *uint) (dto.AttendanceSummary, error)
}

type attendanceService struct {
	attendance repository.AttendanceRepository
	activity   ActivityRecorder
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		attendance: attendanceRepo,
		activity:   activity,
		validator:  validate,
		logger:     logger.With().Str("component", "attendance_service").Logger(),
	}
}

// Mark upserts the status for the (student, course, date) day. Marking the
// same day twice replaces the earlier status.
func (s *attendanceService) Mark(ctx context.Context, payload dto.AttendanceMarkRequest, actor ActivityActor) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, err
	}

	record := models.AttendanceRecord{
		StudentID: payload.StudentID,
		CourseID:  payload.CourseID,
		Date:      truncateToDay(payload.Date),
		Status:    payload.Status,
	}

	if err := s.attendance.Upsert(ctx, &record); err != nil {
		return dto.AttendanceResponse{}, err
	}

	if s.activity != nil {
		recordID := record.ID
		_, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "attendance.marked",
			TargetType: "attendance",
			TargetID:   &recordID,
			Metadata: map[string]interface{}{
				"student_id": payload.StudentID,
				"course_id":  payload.CourseID,
				"status":     payload.Status,
			},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to record attendance activity")
		}
	}

	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) List(ctx context.Context, filter repository.AttendanceFilter) ([]dto.AttendanceResponse, error) {
	records, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewAttendanceResponseSlice(records), nil
}

// Summary tallies statuses for one student. Rate is nil when no records
// exist, mirroring how empty gradebooks report no average.
func (s *attendanceService) Summary(ctx context.Context, studentID uint, courseID *uint) (dto.AttendanceSummary, error) {
	records, err := s.attendance.List(ctx, repository.AttendanceFilter{StudentID: &studentID, CourseID: courseID})
	if err != nil {
		return dto.AttendanceSummary{}, err
	}

	summary := dto.AttendanceSummary{StudentID: studentID}
	attended := 0
	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceTardy:
			summary.Tardy++
		case models.AttendanceExcused:
			summary.Excused++
		}
		if record.CountsAsAttended() {
			attended++
		}
	}

	if total := len(records); total > 0 {
		rate := math.Round(float64(attended) / float64(total) * 100)
		summary.Rate = &rate
	}

	return summary, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
