package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// ErrGradeOutOfRange indicates the earned points fall outside
// [0, assignment.TotalPoints] or are not a finite number.
var ErrGradeOutOfRange = errors.New("grade must be between 0 and total_points")

// ErrAssignmentNotFound indicates the referenced assignment does not exist.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrAssignmentCourseMismatch indicates the assignment belongs to a
// different course than the one named in the request.
var ErrAssignmentCourseMismatch = errors.New("assignment does not belong to course")

// ErrGradeSyncFailed indicates the grade could not be written together with
// its paired submission. The transaction rolled back, so callers may retry
// the whole operation.
var ErrGradeSyncFailed = errors.New("failed to synchronize grade with submission")

// GradeLedgerService maintains per-student, per-course grade entries and the
// aggregates derived from them. Recording a grade keeps the paired submission
// in lockstep: both carry the same earned points or neither write happens.
type GradeLedgerService interface {
	RecordGrade(ctx context.Context, payload dto.RecordGradeRequest, actor ActivityActor) (dto.RecordGradeResponse, error)
	CourseAverage(ctx context.Context, studentID, courseID uint) (*float64, error)
	GPA(ctx context.Context, studentID uint) (dto.GPAResponse, error)
	ListGrades(ctx context.Context, studentID uint, courseID *uint) ([]dto.GradeResponse, error)
}

type gradeLedgerService struct {
	grades      repository.GradeRepository
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	courses     repository.CourseRepository
	validator   *validator.Validate
	activity    ActivityRecorder
	events      GradeEventPublisher
	logger      zerolog.Logger
	now         func() time.Time
}

// NewGradeLedgerService constructs the ledger.
func NewGradeLedgerService(
	grades repository.GradeRepository,
	submissions repository.SubmissionRepository,
	assignments repository.AssignmentRepository,
	courses repository.CourseRepository,
	validate *validator.Validate,
	activity ActivityRecorder,
	events GradeEventPublisher,
	logger zerolog.Logger,
) GradeLedgerService {
	return &gradeLedgerService{
		grades:      grades,
		submissions: submissions,
		assignments: assignments,
		courses:     courses,
		validator:   validate,
		activity:    activity,
		events:      events,
		logger:      logger.With().Str("component", "grade_ledger_service").Logger(),
		now:         time.Now,
	}
}

// LetterGrade maps a percentage to a letter. Thresholds are inclusive on the
// lower bound: 90 is an A, 89.9 is a B.
func LetterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// GradePoint maps a percentage to the 4.0 scale using the same thresholds as
// LetterGrade: A=4.0, B=3.0, C=2.0, D=1.0, F=0.0.
func GradePoint(percentage float64) float64 {
	switch {
	case percentage >= 90:
		return 4.0
	case percentage >= 80:
		return 3.0
	case percentage >= 70:
		return 2.0
	case percentage >= 60:
		return 1.0
	default:
		return 0.0
	}
}

func (s *gradeLedgerService) RecordGrade(ctx context.Context, payload dto.RecordGradeRequest, actor ActivityActor) (dto.RecordGradeResponse, error) {
	tracer := otel.Tracer("github.com/avalon-edu/campus-api/internal/service/grade_ledger")
	ctx, span := tracer.Start(ctx, "ledger.record_grade")
	span.SetAttributes(
		attribute.Int64("ledger.student_id", int64(payload.StudentID)),
		attribute.Int64("ledger.assignment_id", int64(payload.AssignmentID)),
		attribute.Float64("ledger.points_earned", payload.PointsEarned),
	)
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.RecordGradeResponse{}, err
	}

	if math.IsNaN(payload.PointsEarned) || math.IsInf(payload.PointsEarned, 0) {
		span.SetStatus(codes.Error, "points_not_finite")
		return dto.RecordGradeResponse{}, ErrGradeOutOfRange
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.RecordGradeResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.RecordGradeResponse{}, err
	}

	if assignment.CourseID != payload.CourseID {
		span.SetStatus(codes.Error, "course_mismatch")
		return dto.RecordGradeResponse{}, ErrAssignmentCourseMismatch
	}

	// Reject before any write.
	if payload.PointsEarned < 0 || payload.PointsEarned > assignment.TotalPoints {
		span.SetStatus(codes.Error, "points_out_of_range")
		return dto.RecordGradeResponse{}, ErrGradeOutOfRange
	}

	grade, err := s.grades.GetByStudentAndAssignment(ctx, payload.StudentID, payload.AssignmentID)
	switch {
	case err == nil:
		// update in place
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignmentID := payload.AssignmentID
		grade = models.Grade{
			StudentID:    payload.StudentID,
			CourseID:     payload.CourseID,
			AssignmentID: &assignmentID,
			GradeType:    models.GradeTypeAssignment,
		}
	default:
		span.RecordError(err)
		return dto.RecordGradeResponse{}, err
	}

	submission, hasSubmission, err := s.findSubmission(ctx, payload.StudentID, payload.AssignmentID)
	if err != nil {
		span.RecordError(err)
		return dto.RecordGradeResponse{}, err
	}

	if s.alreadyRecorded(grade, submission, hasSubmission, payload.PointsEarned, assignment.TotalPoints) {
		span.SetAttributes(attribute.Bool("ledger.idempotent", true))
		return s.buildRecordResponse(ctx, grade)
	}

	grade.PointsEarned = payload.PointsEarned
	grade.PointsPossible = assignment.TotalPoints

	var submissionPtr *models.Submission
	if hasSubmission {
		earned := payload.PointsEarned
		gradedAt := s.now()
		submission.PointsEarned = &earned
		submission.Status = models.SubmissionStatusGraded
		submission.GradedAt = &gradedAt
		submissionPtr = &submission
	}

	if err := s.grades.SaveWithSubmission(ctx, &grade, submissionPtr); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dual_write_failed")
		s.logger.Error().Err(err).
			Uint("student_id", payload.StudentID).
			Uint("assignment_id", payload.AssignmentID).
			Msg("failed to record grade")
		return dto.RecordGradeResponse{}, fmt.Errorf("%w: %v", ErrGradeSyncFailed, err)
	}

	s.recordActivity(ctx, actor, grade, payload)
	s.publishEvent(ctx, payload)

	return s.buildRecordResponse(ctx, grade)
}

func (s *gradeLedgerService) findSubmission(ctx context.Context, studentID, assignmentID uint) (models.Submission, bool, error) {
	submission, err := s.submissions.GetByStudentAndAssignment(ctx, studentID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Submission{}, false, nil
		}
		return models.Submission{}, false, err
	}

	return submission, true, nil
}

// alreadyRecorded reports whether the requested write would change nothing,
// so re-recording the same value stays idempotent.
func (s *gradeLedgerService) alreadyRecorded(grade models.Grade, submission models.Submission, hasSubmission bool, earned, possible float64) bool {
	if grade.ID == 0 {
		return false
	}
	if math.Abs(grade.PointsEarned-earned) > 1e-9 || math.Abs(grade.PointsPossible-possible) > 1e-9 {
		return false
	}
	if !hasSubmission {
		return true
	}
	return submission.IsGraded() && submission.PointsEarned != nil && math.Abs(*submission.PointsEarned-earned) < 1e-9
}

func (s *gradeLedgerService) buildRecordResponse(ctx context.Context, grade models.Grade) (dto.RecordGradeResponse, error) {
	response := dto.RecordGradeResponse{Grade: dto.NewGradeResponse(grade)}

	average, err := s.CourseAverage(ctx, grade.StudentID, grade.CourseID)
	if err != nil {
		return dto.RecordGradeResponse{}, err
	}

	response.CourseAverage = average
	if average != nil {
		letter := LetterGrade(*average)
		response.LetterGrade = &letter
	}

	return response, nil
}

func (s *gradeLedgerService) recordActivity(ctx context.Context, actor ActivityActor, grade models.Grade, payload dto.RecordGradeRequest) {
	if s.activity == nil {
		return
	}

	gradeID := grade.ID
	_, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     "grade.recorded",
		TargetType: "grade",
		TargetID:   &gradeID,
		Metadata: map[string]interface{}{
			"student_id":    payload.StudentID,
			"assignment_id": payload.AssignmentID,
			"course_id":     payload.CourseID,
			"points_earned": payload.PointsEarned,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("grade_id", grade.ID).Msg("failed to record grading activity")
	}
}

func (s *gradeLedgerService) publishEvent(ctx context.Context, payload dto.RecordGradeRequest) {
	if s.events == nil {
		return
	}

	event := dto.GradeRecordedEvent{
		StudentID:    payload.StudentID,
		CourseID:     payload.CourseID,
		AssignmentID: payload.AssignmentID,
		PointsEarned: payload.PointsEarned,
		RecordedAt:   s.now(),
	}
	if err := s.events.PublishGradeRecorded(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("student_id", payload.StudentID).Msg("failed to publish grade event")
	}
}

// CourseAverage computes round(100 * Σ earned / Σ possible) over the
// student's grades in one course. It returns nil, not zero, when the student
// has no grades there yet.
func (s *gradeLedgerService) CourseAverage(ctx context.Context, studentID, courseID uint) (*float64, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID, &courseID)
	if err != nil {
		return nil, err
	}

	return averageOf(grades), nil
}

func averageOf(grades []models.Grade) *float64 {
	var earned, possible float64
	for _, grade := range grades {
		earned += grade.PointsEarned
		possible += grade.PointsPossible
	}

	if possible <= 0 {
		return nil
	}

	average := math.Round(earned / possible * 100)
	return &average
}

// GPA computes the unweighted mean of GradePoint(course average) over the
// student's enrolled courses. Courses with no recorded grades are excluded
// from both numerator and denominator rather than treated as zero.
func (s *gradeLedgerService) GPA(ctx context.Context, studentID uint) (dto.GPAResponse, error) {
	enrollments, err := s.courses.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return dto.GPAResponse{}, err
	}

	var sum float64
	var counted int
	for _, enrollment := range enrollments {
		average, err := s.CourseAverage(ctx, studentID, enrollment.CourseID)
		if err != nil {
			return dto.GPAResponse{}, err
		}
		if average == nil {
			continue
		}
		sum += GradePoint(*average)
		counted++
	}

	response := dto.GPAResponse{StudentID: studentID, CoursesCounted: counted}
	if counted > 0 {
		gpa := math.Round(sum/float64(counted)*100) / 100
		response.GPA = &gpa
	}

	return response, nil
}

func (s *gradeLedgerService) ListGrades(ctx context.Context, studentID uint, courseID *uint) ([]dto.GradeResponse, error) {
	grades, err := s.grades.ListByStudent(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GradeResponse, 0, len(grades))
	for _, grade := range grades {
		responses = append(responses, dto.NewGradeResponse(grade))
	}

	return responses, nil
}
