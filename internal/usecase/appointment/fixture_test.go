package appointment

import (
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/daycache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

const salonTZ = "America/Sao_Paulo"

// Segunda-feira, longe o bastante para passar pela antecedência mínima.
const bookingDate = "2030-03-11"

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

type fixture struct {
	repo     *memory.Repository
	sink     *recordingSink
	broker   *notify.Broker
	days     *DayStore
	redis    *miniredis.Miniredis
	salon    models.Salon
	calendar models.Calendar
	other    models.Calendar
	cut      models.Service
	color    models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := memory.New()
	salon := repo.AddSalon(models.Salon{
		Name:              "Studio Bela",
		Slug:              "studio-bela",
		Timezone:          salonTZ,
		MinAdvanceMinutes: 60,
	})
	cut := repo.AddService(models.Service{SalonID: salon.ID, Name: "Corte", DurationMinutes: 45})
	color := repo.AddService(models.Service{
		SalonID:         salon.ID,
		Name:            "Coloração",
		DurationMinutes: 120,
		AvailableDays:   []string{"Terça-feira", "Quarta-feira"},
	})
	cal := repo.AddCalendar(models.Calendar{SalonID: salon.ID, Name: "Ana"}, cut.ID, color.ID)
	other := repo.AddCalendar(models.Calendar{SalonID: salon.ID, Name: "Bia"}, cut.ID)

	repo.SetWorkingHours(models.WorkingHours{
		CalendarID: cal.ID,
		Weekday:    int(time.Monday),
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		Active:     true,
	})

	broker := notify.NewBroker(zerolog.Nop())
	cache := daycache.NewRedisCache(client, time.Minute)

	return &fixture{
		repo:     repo,
		sink:     &recordingSink{},
		broker:   broker,
		days:     NewDayStore(repo, cache, broker, zerolog.Nop()),
		redis:    s,
		salon:    salon,
		calendar: cal,
		other:    other,
		cut:      cut,
		color:    color,
	}
}

func (f *fixture) create(opts Options) *CreateAppointment {
	return NewCreateAppointment(f.repo, f.days, f.sink, opts, zerolog.Nop())
}

func (f *fixture) update(opts Options) *UpdateAppointment {
	return NewUpdateAppointment(f.repo, f.days, f.sink, opts, zerolog.Nop())
}

func (f *fixture) input(start, end string) CreateAppointmentInput {
	return CreateAppointmentInput{
		SalonID:     f.salon.ID,
		CalendarID:  f.calendar.ID,
		ClientName:  "Maria",
		ClientPhone: "(11) 98765-4321",
		ServiceID:   f.cut.ID,
		Date:        bookingDate,
		StartTime:   start,
		EndTime:     end,
	}
}

func (f *fixture) loc() *time.Location {
	loc, _ := time.LoadLocation(salonTZ)
	return loc
}

func (f *fixture) at(hm string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02 15:04", bookingDate+" "+hm, f.loc())
	return t
}

// seed grava direto no repositório, sem passar pelo caso de uso.
func (f *fixture) seed(calendarID uint, start, end string, status string) models.Appointment {
	return f.seedAt(calendarID, f.at(start), f.at(end), status)
}

func (f *fixture) seedAt(calendarID uint, start, end time.Time, status string) models.Appointment {
	return f.repo.AddAppointment(models.Appointment{
		SalonID:    f.salon.ID,
		CalendarID: calendarID,
		ServiceID:  f.cut.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     status,
	})
}
