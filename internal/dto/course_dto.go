package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// CourseCreateRequest describes the payload for creating a course.
type CourseCreateRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	TeacherID   uint   `json:"teacher_id" validate:"required,gt=0"`
	Period      string `json:"period" validate:"omitempty,max=32"`
	SchoolYear  string `json:"school_year" validate:"required,max=16"`
	Semester    string `json:"semester" validate:"required,max=16"`
}

// CourseUpdateRequest describes a partial course update.
type CourseUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Period      *string `json:"period" validate:"omitempty,max=32"`
	Semester    *string `json:"semester" validate:"omitempty,max=16"`
}

// EnrollmentRequest links a student to a course.
type EnrollmentRequest struct {
	StudentID uint `json:"student_id" validate:"required,gt=0"`
}

// CourseResponse is returned to API clients when viewing courses.
type CourseResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TeacherID   uint      `json:"teacher_id"`
	Period      string    `json:"period"`
	SchoolYear  string    `json:"school_year"`
	Semester    string    `json:"semester"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCourseResponse converts a Course model into a DTO.
func NewCourseResponse(model models.Course) CourseResponse {
	return CourseResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		TeacherID:   model.TeacherID,
		Period:      model.Period,
		SchoolYear:  model.SchoolYear,
		Semester:    model.Semester,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewCourseResponseSlice converts course models into DTOs.
func NewCourseResponseSlice(models []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(models))
	for _, course := range models {
		responses = append(responses, NewCourseResponse(course))
	}

	return responses
}
