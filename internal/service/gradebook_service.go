package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// GradebookService builds the teacher-facing matrix of students ×
// assignments for one course, with per-student aggregates derived the same
// way the ledger derives them.
type GradebookService interface {
	Matrix(ctx context.Context, courseID uint) (dto.GradebookResponse, error)
}

type gradebookService struct {
	courses     repository.CourseRepository
	assignments repository.AssignmentRepository
	grades      repository.GradeRepository
	logger      zerolog.Logger
}

// NewGradebookService constructs the service.
func NewGradebookService(courseRepo repository.CourseRepository, assignmentRepo repository.AssignmentRepository, gradeRepo repository.GradeRepository, logger zerolog.Logger) GradebookService {
	return &gradebookService{
		courses:     courseRepo,
		assignments: assignmentRepo,
		grades:      gradeRepo,
		logger:      logger.With().Str("component", "gradebook_service").Logger(),
	}
}

func (s *gradebookService) Matrix(ctx context.Context, courseID uint) (dto.GradebookResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GradebookResponse{}, ErrCourseNotFound
		}
		return dto.GradebookResponse{}, err
	}

	assignments, err := s.assignments.ListByCourse(ctx, courseID)
	if err != nil {
		return dto.GradebookResponse{}, err
	}

	roster, err := s.courses.Roster(ctx, courseID)
	if err != nil {
		return dto.GradebookResponse{}, err
	}

	response := dto.GradebookResponse{
		CourseID:    courseID,
		Assignments: dto.NewAssignmentResponseSlice(assignments),
		Rows:        make([]dto.GradebookRow, 0, len(roster)),
	}

	for _, student := range roster {
		grades, err := s.grades.ListByStudent(ctx, student.ID, &courseID)
		if err != nil {
			return dto.GradebookResponse{}, err
		}

		response.Rows = append(response.Rows, buildGradebookRow(student, assignments, grades))
	}

	return response, nil
}

func buildGradebookRow(student models.Student, assignments []models.Assignment, grades []models.Grade) dto.GradebookRow {
	byAssignment := make(map[uint]models.Grade, len(grades))
	for _, grade := range grades {
		if grade.AssignmentID != nil {
			byAssignment[*grade.AssignmentID] = grade
		}
	}

	row := dto.GradebookRow{
		StudentID:   student.ID,
		StudentName: student.Name,
		Cells:       make([]dto.GradebookCell, 0, len(assignments)),
	}

	for _, assignment := range assignments {
		cell := dto.GradebookCell{AssignmentID: assignment.ID}
		if grade, ok := byAssignment[assignment.ID]; ok {
			earned := grade.PointsEarned
			cell.PointsEarned = &earned
		}
		row.Cells = append(row.Cells, cell)
	}

	if average := averageOf(grades); average != nil {
		row.Average = average
		letter := LetterGrade(*average)
		row.LetterGrade = &letter
	}

	return row
}
