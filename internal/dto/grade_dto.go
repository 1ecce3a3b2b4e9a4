package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// RecordGradeRequest is the payload for recording a score against a
// (student, assignment) pair. The earned points are range-checked against the
// assignment's total points by the ledger, not by struct tags.
type RecordGradeRequest struct {
	StudentID    uint    `json:"student_id" validate:"required,gt=0"`
	AssignmentID uint    `json:"assignment_id" validate:"required,gt=0"`
	CourseID     uint    `json:"course_id" validate:"required,gt=0"`
	PointsEarned float64 `json:"points_earned"`
}

// GradeResponse is returned after a grade is recorded or listed.
type GradeResponse struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	CourseID       uint      `json:"course_id"`
	AssignmentID   *uint     `json:"assignment_id"`
	GradeType      string    `json:"grade_type"`
	PointsEarned   float64   `json:"points_earned"`
	PointsPossible float64   `json:"points_possible"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RecordGradeResponse pairs the stored grade with the refreshed course
// average for the affected student.
type RecordGradeResponse struct {
	Grade         GradeResponse `json:"grade"`
	CourseAverage *float64      `json:"course_average"`
	LetterGrade   *string       `json:"letter_grade"`
}

// CourseAverageResponse reports a student's aggregate score for one course.
// Average is null when no grades exist yet; clients render that as an em
// dash, never as zero.
type CourseAverageResponse struct {
	StudentID   uint     `json:"student_id"`
	CourseID    uint     `json:"course_id"`
	Average     *float64 `json:"average"`
	LetterGrade *string  `json:"letter_grade"`
}

// GPAResponse reports a student's grade point average on the 4.0 scale.
type GPAResponse struct {
	StudentID      uint     `json:"student_id"`
	GPA            *float64 `json:"gpa"`
	CoursesCounted int      `json:"courses_counted"`
}

// NewGradeResponse converts a Grade model into a DTO.
func NewGradeResponse(model models.Grade) GradeResponse {
	return GradeResponse{
		ID:             model.ID,
		StudentID:      model.StudentID,
		CourseID:       model.CourseID,
		AssignmentID:   model.AssignmentID,
		GradeType:      model.GradeType,
		PointsEarned:   model.PointsEarned,
		PointsPossible: model.PointsPossible,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
