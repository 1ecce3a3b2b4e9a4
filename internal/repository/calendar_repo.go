package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avalon-edu/campus-api/internal/models"
)

// CalendarRepository persists school calendar events.
type CalendarRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	Update(ctx context.Context, event *models.CalendarEvent) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (models.CalendarEvent, error)
	ListRange(ctx context.Context, from, to time.Time, audience string) ([]models.CalendarEvent, error)
}

type calendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository instantiates the repository.
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &calendarRepository{db: db}
}

func (r *calendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *calendarRepository) Update(ctx context.Context, event *models.CalendarEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *calendarRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CalendarEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *calendarRepository) GetByID(ctx context.Context, id uint) (models.CalendarEvent, error) {
	var event models.CalendarEvent
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return models.CalendarEvent{}, err
	}

	return event, nil
}

func (r *calendarRepository) ListRange(ctx context.Context, from, to time.Time, audience string) ([]models.CalendarEvent, error) {
	query := r.db.WithContext(ctx).
		Where("starts_at < ?", to).
		Where("ends_at >= ?", from)

	if audience != "" && audience != "all" {
		query = query.Where("audience IN ?", []string{"all", audience})
	}

	var events []models.CalendarEvent
	if err := query.Order("starts_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
