package attachments

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const MaxUploadBytes = 10 << 20

type Repository interface {
	CreateAttachment(ctx context.Context, a *models.Attachment) error
	ListAttachments(ctx context.Context, salonID, appointmentID uint) ([]models.Attachment, error)
	GetAttachment(ctx context.Context, salonID, attachmentID uint) (*models.Attachment, error)
	DeleteAttachment(ctx context.Context, salonID, attachmentID uint) error
}

// View é o anexo com a URL assinada de download.
type View struct {
	models.Attachment
	URL string `json:"url"`
}

type Service struct {
	repo         Repository
	appointments domain.Repository
	store        Storage
	presignTTL   time.Duration
}

func NewService(repo Repository, appointments domain.Repository, store Storage, presignTTL time.Duration) *Service {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &Service{
		repo:         repo,
		appointments: appointments,
		store:        store,
		presignTTL:   presignTTL,
	}
}

type UploadInput struct {
	SalonID       uint
	AppointmentID uint
	Name          string
	Body          io.Reader
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (*View, error) {
	if _, err := s.appointments.GetAppointment(ctx, in.SalonID, in.AppointmentID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(in.Body, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 || len(data) > MaxUploadBytes {
		return nil, httperr.ErrBusiness(httperr.CodeUnsupportedFile)
	}

	payload, err := Normalize(data)
	if err != nil {
		return nil, err
	}

	key := ObjectKey(in.SalonID, in.AppointmentID, payload.Ext)
	if err := s.store.Put(ctx, key, bytes.NewReader(payload.Data), int64(len(payload.Data)), payload.ContentType); err != nil {
		return nil, err
	}

	a := &models.Attachment{
		SalonID:       in.SalonID,
		AppointmentID: in.AppointmentID,
		Name:          displayName(in.Name, payload.Ext),
		ObjectKey:     key,
		ContentType:   payload.ContentType,
		Size:          int64(len(payload.Data)),
	}
	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		// objeto órfão no bucket não tem referência; remove
		_ = s.store.Delete(ctx, key)
		return nil, err
	}

	return s.view(ctx, *a)
}

func (s *Service) List(ctx context.Context, salonID, appointmentID uint) ([]View, error) {
	items, err := s.repo.ListAttachments(ctx, salonID, appointmentID)
	if err != nil {
		return nil, err
	}

	out := make([]View, 0, len(items))
	for _, a := range items {
		v, err := s.view(ctx, a)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, salonID, attachmentID uint) error {
	a, err := s.repo.GetAttachment(ctx, salonID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, a.ObjectKey); err != nil {
		return err
	}
	return s.repo.DeleteAttachment(ctx, salonID, attachmentID)
}

func (s *Service) view(ctx context.Context, a models.Attachment) (*View, error) {
	url, err := s.store.PresignGet(ctx, a.ObjectKey, s.presignTTL)
	if err != nil {
		return nil, err
	}
	return &View{Attachment: a, URL: url}, nil
}

func ObjectKey(salonID, appointmentID uint, ext string) string {
	return fmt.Sprintf("salons/%d/appointments/%d/%s%s", salonID, appointmentID, uuid.NewString(), ext)
}

// displayName troca a extensão quando o arquivo foi convertido.
func displayName(name, ext string) string {
	name = filepath.Base(name)
	if name == "." || name == "/" || name == "" {
		return "anexo" + ext
	}
	return name[:len(name)-len(filepath.Ext(name))] + ext
}
