package dto

import (
	"time"

	"github.com/avalon-edu/campus-api/internal/models"
)

// CalendarEventCreateRequest describes the payload for creating an event.
type CalendarEventCreateRequest struct {
	Title       string    `json:"title" validate:"required,min=3,max=255"`
	Description string    `json:"description" validate:"omitempty,max=5000"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required"`
	Audience    string    `json:"audience" validate:"omitempty,oneof=all student teacher parent"`
}

// CalendarEventResponse is returned when viewing calendar events.
type CalendarEventResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Audience    string    `json:"audience"`
}

// NewCalendarEventResponse converts a CalendarEvent model into a DTO.
func NewCalendarEventResponse(model models.CalendarEvent) CalendarEventResponse {
	return CalendarEventResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		StartsAt:    model.StartsAt,
		EndsAt:      model.EndsAt,
		Audience:    model.Audience,
	}
}

// NewCalendarEventResponseSlice converts calendar models into DTOs.
func NewCalendarEventResponseSlice(models []models.CalendarEvent) []CalendarEventResponse {
	responses := make([]CalendarEventResponse, 0, len(models))
	for _, event := range models {
		responses = append(responses, NewCalendarEventResponse(event))
	}

	return responses
}
