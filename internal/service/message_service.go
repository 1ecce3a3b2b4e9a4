package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/dto"
	"github.com/avalon-edu/campus-api/internal/models"
	"github.com/avalon-edu/campus-api/internal/repository"
)

// ErrMessageNotFound indicates the message does not exist or does not belong
// to the caller.
var ErrMessageNotFound = errors.New("message not found")

// ErrEmptyBody indicates the body was empty after sanitization.
var ErrEmptyBody = errors.New("body empty after sanitization")

// MessageService handles direct messages and course announcements. Bodies
// are HTML-sanitized before they are stored.
type MessageService interface {
	Send(ctx context.Context, senderID uint, payload dto.MessageCreateRequest) (dto.MessageResponse, error)
	Inbox(ctx context.Context, userID uint, limit int) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, id, recipientID uint) (dto.MessageResponse, error)
	Announce(ctx context.Context, authorID uint, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error)
	Announcements(ctx context.Context, courseID *uint, limit int) ([]dto.AnnouncementResponse, error)
}

type messageService struct {
	messages      repository.MessageRepository
	announcements repository.AnnouncementRepository
	activity      ActivityRecorder
	validator     *validator.Validate
	sanitizer     *bluemonday.Policy
	logger        zerolog.Logger
}

// NewMessageService constructs the service.
func NewMessageService(messageRepo repository.MessageRepository, announcementRepo repository.AnnouncementRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) MessageService {
	return &messageService{
		messages:      messageRepo,
		announcements: announcementRepo,
		activity:      activity,
		validator:     validate,
		sanitizer:     bluemonday.StrictPolicy(),
		logger:        logger.With().Str("component", "message_service").Logger(),
	}
}

func (s *messageService) Send(ctx context.Context, senderID uint, payload dto.MessageCreateRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	if body == "" {
		return dto.MessageResponse{}, ErrEmptyBody
	}

	message := models.Message{
		SenderID:    senderID,
		RecipientID: payload.RecipientID,
		Subject:     strings.TrimSpace(s.sanitizer.Sanitize(payload.Subject)),
		Body:        body,
	}

	if err := s.messages.Create(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}

	s.logger.Info().Uint("message_id", message.ID).Uint("recipient_id", message.RecipientID).Msg("message sent")

	return dto.NewMessageResponse(message), nil
}

func (s *messageService) Inbox(ctx context.Context, userID uint, limit int) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewMessageResponseSlice(messages), nil
}

func (s *messageService) MarkRead(ctx context.Context, id, recipientID uint) (dto.MessageResponse, error) {
	message, err := s.messages.MarkRead(ctx, id, recipientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MessageResponse{}, ErrMessageNotFound
		}
		return dto.MessageResponse{}, err
	}

	return dto.NewMessageResponse(message), nil
}

func (s *messageService) Announce(ctx context.Context, authorID uint, payload dto.AnnouncementCreateRequest, actor ActivityActor) (dto.AnnouncementResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(payload.Body))
	if body == "" {
		return dto.AnnouncementResponse{}, ErrEmptyBody
	}

	announcement := models.Announcement{
		CourseID: payload.CourseID,
		AuthorID: authorID,
		Title:    strings.TrimSpace(s.sanitizer.Sanitize(payload.Title)),
		Body:     body,
	}

	if err := s.announcements.Create(ctx, &announcement); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if s.activity != nil {
		announcementID := announcement.ID
		_, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "announcement.posted",
			TargetType: "announcement",
			TargetID:   &announcementID,
			Metadata:   map[string]interface{}{"title": announcement.Title},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to record announcement activity")
		}
	}

	return dto.NewAnnouncementResponse(announcement), nil
}

func (s *messageService) Announcements(ctx context.Context, courseID *uint, limit int) ([]dto.AnnouncementResponse, error) {
	announcements, err := s.announcements.List(ctx, courseID, limit)
	if err != nil {
		return nil, err
	}

	return dto.NewAnnouncementResponseSlice(announcements), nil
}
