package appointment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID    uint
	UserID     *uint
	CalendarID uint

	// ClientID escolhe um cliente existente. Sem ele, o cliente é
	// localizado (ou criado) pelo telefone.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:mm
	EndTime   string // HH:mm, opcional
	Notes     string

	// Public aplica as regras do agendamento online: antecedência mínima,
	// expediente da agenda e dias do serviço.
	Public bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	days   *DayStore
	audit  audit.Sink
	opts   Options
	logger zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	days *DayStore,
	audit audit.Sink,
	opts Options,
	logger zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:   repo,
		days:   days,
		audit:  audit,
		opts:   opts,
		logger: logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Salão / agenda / serviço
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	cal, err := uc.repo.GetCalendar(ctx, in.SalonID, in.CalendarID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Intervalo no fuso do salão
	// --------------------------------------------------
	start, end, err := resolveInterval(salon, in.Date, in.StartTime, in.EndTime, service)
	if err != nil {
		return nil, err
	}

	if in.Public {
		if err := checkCalendarOffers(ctx, uc.repo, in.SalonID, cal.ID, service.ID); err != nil {
			return nil, err
		}
		if err := checkAdvance(salon, start); err != nil {
			return nil, err
		}
		if err := checkWorkingHours(ctx, uc.repo, cal.ID, start, end); err != nil {
			return nil, err
		}
	}

	if err := checkServiceDay(uc.logger, service, start, in.Public || uc.opts.EnforceServiceDays); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cliente
	// --------------------------------------------------
	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflito + criação na mesma transação
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:    in.SalonID,
		CalendarID: cal.ID,
		ClientID:   client.ID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      strings.TrimSpace(in.Notes),
	}

	var conflict *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		conflict, err = assertNoConflict(ctx, tx, in.SalonID, cal.ID, start, end, 0)
		if err != nil {
			return err
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, conflictError(err, uc.audit, "create", in.SalonID, in.UserID, cal.ID, start, end, conflict)
	}

	ap.Calendar = *cal
	ap.Client = *client
	ap.Service = *service

	// --------------------------------------------------
	// Auditoria + notificação
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"public": in.Public},
	})

	uc.days.Changed(ctx, in.SalonID, cal.ID, start, end, timezone.Location(salon.Timezone), notify.ActionCreated, ap.ID)

	return ap, nil
}

func (uc *CreateAppointment) resolveClient(ctx context.Context, in CreateAppointmentInput) (*models.Client, error) {
	if in.ClientID != 0 && !in.Public {
		return uc.repo.GetClient(ctx, in.SalonID, in.ClientID)
	}

	name := strings.TrimSpace(in.ClientName)
	phone := validators.NormalizePhone(in.ClientPhone)
	if name == "" || !validators.IsPhoneValid(phone) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}

	return uc.repo.GetOrCreateClient(ctx, in.SalonID, name, phone, strings.TrimSpace(in.ClientEmail))
}
