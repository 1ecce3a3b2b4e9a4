package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// StudentCreateRequest describes the payload for registering a student.
type StudentCreateRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=255"`
	Email          string `json:"email" validate:"required,email,max=255"`
	GradeLevel     string `json:"grade_level" validate:"omitempty,max=32"`
	GraduationYear *int   `json:"graduation_year" validate:"omitempty,gte=2000,lte=2100"`
	ParentID       *uint  `json:"parent_id" validate:"omitempty,gt=0"`
}

// StudentUpdateRequest describes a partial student update.
type StudentUpdateRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	GradeLevel     *string `json:"grade_level" validate:"omitempty,max=32"`
	GraduationYear *int    `json:"graduation_year" validate:"omitempty,gte=2000,lte=2100"`
	ParentID       *uint   `json:"parent_id" validate:"omitempty,gt=0"`
}

// StudentListRequest describes query parameters for listing students.
type StudentListRequest struct {
	Search   string `query:"search"`
	ParentID *uint  `query:"parent_id"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// StudentResponse is returned to API clients when viewing students.
type StudentResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	GradeLevel     string    `json:"grade_level"`
	GraduationYear *int      `json:"graduation_year"`
	ParentID       *uint     `json:"parent_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentListResponse pairs a page of students with the total count.
type StudentListResponse struct {
	Students []StudentResponse `json:"students"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// NewStudentResponse converts a Student model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:             model.ID,
		Name:           model.Name,
		Email:          model.Email,
		GradeLevel:     model.GradeLevel,
		GraduationYear: model.GraduationYear,
		ParentID:       model.ParentID,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// NewStudentResponseSlice converts student models into DTOs.
func NewStudentResponseSlice(models []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(models))
	for _, student := range models {
		responses = append(responses, NewStudentResponse(student))
	}

	return responses
}
