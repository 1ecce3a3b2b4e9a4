package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/models"
)

// MessageRepository persists direct messages.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error)
	MarkRead(ctx context.Context, id, recipientID uint) (models.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository instantiates the repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]models.Message, error) {
	query := r.db.WithContext(ctx).
		Where("recipient_id = ? OR sender_id = ?", userID, userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	var messages []models.Message
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id, recipientID uint) (models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("recipient_id = ?", recipientID).
		First(&message).Error; err != nil {
		return models.Message{}, err
	}

	if message.ReadAt == nil {
		if err := r.db.WithContext(ctx).Model(&message).Update("read_at", gorm.Expr("CURRENT_TIMESTAMP")).Error; err != nil {
			return models.Message{}, err
		}
		if err := r.db.WithContext(ctx).First(&message, id).Error; err != nil {
			return models.Message{}, err
		}
	}

	return message, nil
}

// AnnouncementRepository persists course announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	List(ctx context.Context, courseID *uint, limit int) ([]models.Announcement, error)
	Delete(ctx context.Context, id uint) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository instantiates the repository.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

func (r *announcementRepository) List(ctx context.Context, courseID *uint, limit int) ([]models.Announcement, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{}).Order("created_at DESC")

	if courseID != nil {
		query = query.Where("course_id = ?", *courseID)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	var announcements []models.Announcement
	if err := query.Find(&announcements).Error; err != nil {
		return nil, err
	}

	return announcements, nil
}

func (r *announcementRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
