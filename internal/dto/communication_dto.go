package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// MessageCreateRequest describes the payload for sending a direct message.
type MessageCreateRequest struct {
	RecipientID uint   `json:"recipient_id" validate:"required,gt=0"`
	Subject     string `json:"subject" validate:"omitempty,max=255"`
	Body        string `json:"body" validate:"required,min=1,max=10000"`
}

// MessageResponse is returned when viewing messages.
type MessageResponse struct {
	ID          uint       `json:"id"`
	SenderID    uint       `json:"sender_id"`
	RecipientID uint       `json:"recipient_id"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// AnnouncementCreateRequest describes the payload for posting an announcement.
type AnnouncementCreateRequest struct {
	CourseID *uint  `json:"course_id" validate:"omitempty,gt=0"`
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Body     string `json:"body" validate:"required,min=1,max=10000"`
}

// AnnouncementResponse is returned when viewing announcements.
type AnnouncementResponse struct {
	ID        uint      `json:"id"`
	CourseID  *uint     `json:"course_id"`
	AuthorID  uint      `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// GradeRecordedEvent is published to the message broker after a grade write.
type GradeRecordedEvent struct {
	StudentID    uint      `json:"student_id"`
	CourseID     uint      `json:"course_id"`
	AssignmentID uint      `json:"assignment_id"`
	PointsEarned float64   `json:"points_earned"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// NewMessageResponse converts a Message model into a DTO.
func NewMessageResponse(model models.Message) MessageResponse {
	return MessageResponse{
		ID:          model.ID,
		SenderID:    model.SenderID,
		RecipientID: model.RecipientID,
		Subject:     model.Subject,
		Body:        model.Body,
		ReadAt:      model.ReadAt,
		CreatedAt:   model.CreatedAt,
	}
}

// NewMessageResponseSlice converts message models into DTOs.
func NewMessageResponseSlice(models []models.Message) []MessageResponse {
	responses := make([]MessageResponse, 0, len(models))
	for _, message := range models {
		responses = append(responses, NewMessageResponse(message))
	}

	return responses
}

// NewAnnouncementResponse converts an Announcement model into a DTO.
func NewAnnouncementResponse(model models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        model.ID,
		CourseID:  model.CourseID,
		AuthorID:  model.AuthorID,
		Title:     model.Title,
		Body:      model.Body,
		CreatedAt: model.CreatedAt,
	}
}

// NewAnnouncementResponseSlice converts announcement models into DTOs.
func NewAnnouncementResponseSlice(models []models.Announcement) []AnnouncementResponse {
	responses := make([]AnnouncementResponse, 0, len(models))
	for _, announcement := range models {
		responses = append(responses, NewAnnouncementResponse(announcement))
	}

	return responses
}
