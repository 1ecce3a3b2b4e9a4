package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// AttendanceMarkRequest records one student's status for one day.
type AttendanceMarkRequest struct {
	StudentID uint      `json:"student_id" validate:"required,gt=0"`
	CourseID  uint      `json:"course_id" validate:"required,gt=0"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent tardy excused"`
}

// AttendanceResponse is returned when viewing attendance records.
type AttendanceResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	CourseID  uint      `json:"course_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AttendanceSummary aggregates one student's attendance over a period.
type AttendanceSummary struct {
	StudentID uint     `json:"student_id"`
	Present   int      `json:"present"`
	Absent    int      `json:"absent"`
	Tardy     int      `json:"tardy"`
	Excused   int      `json:"excused"`
	Rate      *float64 `json:"rate"`
}

// NewAttendanceResponse converts an AttendanceRecord model into a DTO.
func NewAttendanceResponse(model models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		CourseID:  model.CourseID,
		Date:      model.Date,
		Status:    model.Status,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewAttendanceResponseSlice converts attendance models into DTOs.
func NewAttendanceResponseSlice(models []models.AttendanceRecord) []AttendanceResponse {
	responses := make([]AttendanceResponse, 0, len(models))
	for _, record := range models {
		responses = append(responses, NewAttendanceResponse(record))
	}

	return responses
}
