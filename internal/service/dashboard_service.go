package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// DashboardService produces the aggregated views behind the student and
// parent dashboards. All numbers are derived on demand from persisted state;
// nothing here writes.
type DashboardService interface {
	StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
	ParentDashboard(ctx context.Context, parentID uint) (dto.ParentDashboardResponse, error)
	AdminOverview(ctx context.Context) (dto.AdminOverviewResponse, error)
}

type dashboardService struct {
	ledger      GradeLedgerService
	attendance  AttendanceService
	courses     repository.CourseRepository
	students    repository.StudentRepository
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(
	ledger GradeLedgerService,
	attendance AttendanceService,
	courseRepo repository.CourseRepository,
	studentRepo repository.StudentRepository,
	submissionRepo repository.SubmissionRepository,
	assignmentRepo repository.AssignmentRepository,
	cache *redis.Client,
	ttl time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		ledger:      ledger,
		attendance:  attendance,
		courses:     courseRepo,
		students:    studentRepo,
		submissions: submissionRepo,
		assignments: assignmentRepo,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) StudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", studentID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildStudentDashboard(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) buildStudentDashboard(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	enrollments, err := s.courses.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	standings := make([]dto.CourseStanding, 0, len(enrollments))
	for _, enrollment := range enrollments {
		standing := dto.CourseStanding{
			CourseID:   enrollment.CourseID,
			CourseName: enrollment.Course.Name,
			Semester:   enrollment.Course.Semester,
		}

		grades, err := s.ledger.ListGrades(ctx, studentID, &enrollment.CourseID)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}
		standing.GradedCount = len(grades)

		average, err := s.ledger.CourseAverage(ctx, studentID, enrollment.CourseID)
		if err != nil {
			return dto.StudentDashboardResponse{}, err
		}
		standing.Average = average
		if average != nil {
			letter := LetterGrade(*average)
			standing.LetterGrade = &letter
		}

		standings = append(standings, standing)
	}

	gpa, err := s.ledger.GPA(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	submissionSummary, err := s.buildSubmissionSummary(ctx, studentID, enrollments)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	attendanceSummary, err := s.attendance.Summary(ctx, studentID, nil)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	return dto.StudentDashboardResponse{
		StudentID:   studentID,
		GPA:         gpa.GPA,
		Courses:     standings,
		Submissions: submissionSummary,
		Attendance:  attendanceSummary,
		GeneratedAt: s.now(),
	}, nil
}

func (s *dashboardService) buildSubmissionSummary(ctx context.Context, studentID uint, enrollments []models.Enrollment) (dto.SubmissionSummary, error) {
	submissions, err := s.submissions.List(ctx, repository.SubmissionFilter{StudentID: &studentID})
	if err != nil {
		return dto.SubmissionSummary{}, err
	}

	byAssignment := make(map[uint]models.Submission, len(submissions))
	for _, submission := range submissions {
		byAssignment[submission.AssignmentID] = submission
	}

	now := s.now()
	summary := dto.SubmissionSummary{}
	for _, enrollment := range enrollments {
		assignments, err := s.assignments.ListByCourse(ctx, enrollment.CourseID)
		if err != nil {
			return dto.SubmissionSummary{}, err
		}

		for _, assignment := range assignments {
			summary.Total++
			submission, submitted := byAssignment[assignment.ID]

			switch {
			case submitted && submission.IsGraded():
				summary.Graded++
			case submitted:
				summary.Submitted++
			default:
				summary.Pending++
				if assignment.IsPastDue(now) {
					summary.Overdue++
				}
			}
		}
	}

	return summary, nil
}

// AdminOverview tallies school-wide entity counts. Counts are cheap enough
// to derive on every request, so the dashboard cache is not involved.
func (s *dashboardService) AdminOverview(ctx context.Context) (dto.AdminOverviewResponse, error) {
	_, studentCount, err := s.students.List(ctx, repository.StudentFilter{Page: 1, PageSize: 1})
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	courseCount, err := s.courses.Count(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	assignmentCount, err := s.assignments.Count(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	submissionCount, err := s.submissions.Count(ctx)
	if err != nil {
		return dto.AdminOverviewResponse{}, err
	}

	return dto.AdminOverviewResponse{
		Students:    studentCount,
		Courses:     courseCount,
		Assignments: assignmentCount,
		Submissions: submissionCount,
		GeneratedAt: s.now(),
	}, nil
}

func (s *dashboardService) ParentDashboard(ctx context.Context, parentID uint) (dto.ParentDashboardResponse, error) {
	children, _, err := s.students.List(ctx, repository.StudentFilter{ParentID: &parentID})
	if err != nil {
		return dto.ParentDashboardResponse{}, err
	}

	response := dto.ParentDashboardResponse{
		ParentID:    parentID,
		Children:    make([]dto.StudentDashboardResponse, 0, len(children)),
		GeneratedAt: s.now(),
	}

	for _, child := range children {
		dashboard, err := s.StudentDashboard(ctx, child.ID)
		if err != nil {
			return dto.ParentDashboardResponse{}, err
		}
		response.Children = append(response.Children, dashboard)
	}

	return response, nil
}
