package memory

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func (r *Repository) CreateAttachment(_ context.Context, a *models.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.id()
	a.CreatedAt = time.Now()
	r.attachments[a.ID] = *a
	return nil
}

func (r *Repository) ListAttachments(_ context.Context, salonID, appointmentID uint) ([]models.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Attachment{}
	for _, a := range r.attachments {
		if a.SalonID == salonID && a.AppointmentID == appointmentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) GetAttachment(_ context.Context, salonID, attachmentID uint) (*models.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.attachments[attachmentID]
	if !ok || a.SalonID != salonID {
		return nil, httperr.ErrBusiness(httperr.CodeAttachmentNotFound)
	}
	return &a, nil
}

func (r *Repository) DeleteAttachment(_ context.Context, salonID, attachmentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attachments[attachmentID]
	if !ok || a.SalonID != salonID {
		return httperr.ErrBusiness(httperr.CodeAttachmentNotFound)
	}
	delete(r.attachments, attachmentID)
	return nil
}
