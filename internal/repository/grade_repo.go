package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/models"
)

// GradeRepository persists grade entries. The grade for a (student,
// assignment) pair and its paired submission must never diverge, so the
// combined write goes through SaveWithSubmission.
type GradeRepository interface {
	GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Grade, error)
	ListByStudent(ctx context.Context, studentID uint, courseID *uint) ([]models.Grade, error)
	SaveWithSubmission(ctx context.Context, grade *models.Grade, submission *models.Submission) error
}

type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository instantiates a GORM-backed repository.
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

func (r *gradeRepository) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Grade, error) {
	var grade models.Grade
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("assignment_id = ?", assignmentID).
		First(&grade).Error; err != nil {
		return models.Grade{}, err
	}

	return grade, nil
}

func (r *gradeRepository) ListByStudent(ctx context.Context, studentID uint, courseID *uint) ([]models.Grade, error) {
	query := r.db.WithContext(ctx).Model(&models.Grade{}).Where("student_id = ?", studentID)

	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	var grades []models.Grade
	if err := query.Order("created_at ASC").Find(&grades).Error; err != nil {
		return nil, err
	}

	return grades, nil
}

// SaveWithSubmission upserts the grade and, when a paired submission is
// supplied, applies its grading fields inside the same transaction so partial
// application is never persisted.
func (r *gradeRepository) SaveWithSubmission(ctx context.Context, grade *models.Grade, submission *models.Submission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(grade).Error; err != nil {
			return fmt.Errorf("save grade: %w", err)
		}

		if submission != nil {
			if err := tx.Save(submission).Error; err != nil {
				return fmt.Errorf("sync submission: %w", err)
			}
		}

		return nil
	})
}
