package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AttachmentGormRepository struct {
	db *gorm.DB
}

func NewAttachmentGormRepository(db *gorm.DB) *AttachmentGormRepository {
	return &AttachmentGormRepository{db: db}
}

func (r *AttachmentGormRepository) CreateAttachment(ctx context.Context, a *models.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AttachmentGormRepository) ListAttachments(ctx context.Context, salonID, appointmentID uint) ([]models.Attachment, error) {
	var out []models.Attachment
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND appointment_id = ?", salonID, appointmentID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AttachmentGormRepository) GetAttachment(ctx context.Context, salonID, attachmentID uint) (*models.Attachment, error) {
	var a models.Attachment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", attachmentID, salonID).
		First(&a).Error; err != nil {
		return nil, notFound(err, httperr.CodeAttachmentNotFound)
	}
	return &a, nil
}

func (r *AttachmentGormRepository) DeleteAttachment(ctx context.Context, salonID, attachmentID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", attachmentID, salonID).
		Delete(&models.Attachment{}).Error
}
