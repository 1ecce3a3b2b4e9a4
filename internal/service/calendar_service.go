package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// ErrEventNotFound indicates the calendar event does not exist.
var ErrEventNotFound = errors.New("calendar event not found")

// ErrEventRange indicates the event ends before it starts.
var ErrEventRange = errors.New("event must end after it starts")

// CalendarService manages school calendar events.
type CalendarService interface {
	Create(ctx context.Context, payload dto.CalendarEventCreateRequest) (dto.CalendarEventResponse, error)
	Delete(ctx context.Context, id uint) error
	ListRange(ctx context.Context, from, to time.Time, audience string) ([]dto.CalendarEventResponse, error)
}

type calendarService struct {
	events    repository.CalendarRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCalendarService constructs the service.
func NewCalendarService(calendarRepo repository.CalendarRepository, validate *validator.Validate, logger zerolog.Logger) CalendarService {
	return &calendarService{
		events:    calendarRepo,
		validator: validate,
		logger:    logger.With().Str("component", "calendar_service").Logger(),
	}
}

func (s *calendarService) Create(ctx context.Context, payload dto.CalendarEventCreateRequest) (dto.CalendarEventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	if !payload.EndsAt.After(payload.StartsAt) {
		return dto.CalendarEventResponse{}, ErrEventRange
	}

	audience := payload.Audience
	if audience == "" {
		audience = "all"
	}

	event := models.CalendarEvent{
		Title:       payload.Title,
		Description: payload.Description,
		StartsAt:    payload.StartsAt,
		EndsAt:      payload.EndsAt,
		Audience:    audience,
	}

	if err := s.events.Create(ctx, &event); err != nil {
		return dto.CalendarEventResponse{}, err
	}

	s.logger.Info().Uint("event_id", event.ID).Msg("calendar event created")

	return dto.NewCalendarEventResponse(event), nil
}

func (s *calendarService) Delete(ctx context.Context, id uint) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}

	return nil
}

func (s *calendarService) ListRange(ctx context.Context, from, to time.Time, audience string) ([]dto.CalendarEventResponse, error) {
	events, err := s.events.ListRange(ctx, from, to, audience)
	if err != nil {
		return nil, err
	}

	return dto.NewCalendarEventResponseSlice(events), nil
}
