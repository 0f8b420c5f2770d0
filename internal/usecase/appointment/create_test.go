package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

func TestCreate_DerivesEndFromService(t *testing.T) {
	f := newFixture(t)

	ap, err := f.create(Options{}).Execute(context.Background(), f.input("10:00", ""))
	require.NoError(t, err)

	assert.True(t, ap.StartTime.Equal(f.at("10:00")))
	assert.True(t, ap.EndTime.Equal(f.at("10:45")))
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, "11987654321", ap.Client.Phone)
	assert.Equal(t, []string{"appointment_created"}, f.sink.actions())
}

func TestCreate_ExplicitEndWins(t *testing.T) {
	f := newFixture(t)

	ap, err := f.create(Options{}).Execute(context.Background(), f.input("10:00", "11:30"))
	require.NoError(t, err)
	assert.True(t, ap.EndTime.Equal(f.at("11:30")))
}

func TestCreate_RejectsInvertedInterval(t *testing.T) {
	f := newFixture(t)

	for _, end := range []string{"10:00", "09:30"} {
		_, err := f.create(Options{}).Execute(context.Background(), f.input("10:00", end))
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidInterval), end)
	}
	assert.Zero(t, f.repo.AppointmentCount())
}

func TestCreate_InvalidDate(t *testing.T) {
	f := newFixture(t)
	in := f.input("10:00", "")
	in.Date = "2030-02-30"

	_, err := f.create(Options{}).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
}

func TestCreate_Conflict(t *testing.T) {
	f := newFixture(t)
	existing := f.seed(f.calendar.ID, "10:00", "11:00", "scheduled")

	_, err := f.create(Options{}).Execute(context.Background(), f.input("10:30", "11:30"))
	require.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
	assert.Equal(t, 1, f.repo.AppointmentCount())

	require.Len(t, f.sink.events, 1)
	ev := f.sink.events[0]
	assert.Equal(t, "appointment_conflict", ev.Action)
	assert.Equal(t, existing.ID, ev.Metadata.(map[string]any)["conflict_id"])
}

func TestCreate_AdjacentIntervalsDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.seed(f.calendar.ID, "10:00", "11:00", "scheduled")

	_, err := f.create(Options{}).Execute(context.Background(), f.input("11:00", "12:00"))
	require.NoError(t, err)

	_, err = f.create(Options{}).Execute(context.Background(), f.input("09:00", "10:00"))
	require.NoError(t, err)
}

func TestCreate_CanceledAndOtherCalendarIgnored(t *testing.T) {
	f := newFixture(t)
	f.seed(f.calendar.ID, "10:00", "11:00", "canceled")
	f.seed(f.other.ID, "10:00", "11:00", "scheduled")

	_, err := f.create(Options{}).Execute(context.Background(), f.input("10:00", "11:00"))
	require.NoError(t, err)
}

func TestCreate_OvernightNeighbourConflicts(t *testing.T) {
	f := newFixture(t)
	prevDay := f.at("23:00").AddDate(0, 0, -1)
	f.seedAt(f.calendar.ID, prevDay, prevDay.Add(3*time.Hour), "scheduled")

	_, err := f.create(Options{}).Execute(context.Background(), f.input("01:00", "02:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
}

func TestCreate_ServiceDays(t *testing.T) {
	f := newFixture(t)
	in := f.input("10:00", "")
	in.ServiceID = f.color.ID // terça e quarta; bookingDate é segunda

	_, err := f.create(Options{}).Execute(context.Background(), in)
	require.NoError(t, err, "advisory by default")

	in.StartTime = "14:00"
	_, err = f.create(Options{EnforceServiceDays: true}).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceUnavailable))
}

func TestCreate_PublicRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("12:30", "")
	in.Public = true
	_, err := f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideWorkingHour), "lunch")

	in.StartTime = "17:30"
	_, err = f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideWorkingHour), "past closing")

	in.StartTime = "09:00"
	_, err = f.create(Options{}).Execute(ctx, in)
	require.NoError(t, err)

	soon := time.Now().In(f.loc()).Add(10 * time.Minute)
	in.Date = soon.Format(domain.DateKeyLayout)
	in.StartTime = soon.Format(domain.ClockLayout)
	_, err = f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon))
}

func TestCreate_ClientResolution(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.create(Options{}).Execute(ctx, f.input("09:00", ""))
	require.NoError(t, err)

	in := f.input("14:00", "")
	in.ClientPhone = "11 98765 4321"
	b, err := f.create(Options{}).Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, a.ClientID, b.ClientID)

	in = f.input("15:00", "")
	in.ClientID = a.ClientID
	in.ClientName, in.ClientPhone = "", ""
	c, err := f.create(Options{}).Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, a.ClientID, c.ClientID)

	in.ClientID = 0
	_, err = f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))

	in.ClientID = 999
	_, err = f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeClientNotFound))
}

func TestCreate_PublishesDay(t *testing.T) {
	f := newFixture(t)
	updates, cancel := f.broker.Subscribe(f.calendar.ID)
	defer cancel()

	ap, err := f.create(Options{}).Execute(context.Background(), f.input("10:00", ""))
	require.NoError(t, err)

	select {
	case u := <-updates:
		assert.Equal(t, notify.ActionCreated, u.Action)
		assert.Equal(t, bookingDate, u.DateKey)
		assert.Equal(t, ap.ID, u.AppointmentID)
		require.Len(t, u.Appointments, 1)
	case <-time.After(time.Second):
		t.Fatal("no update published")
	}
}

func TestCreate_InvalidatesDayCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := NewListAppointmentsByCalendarAndDate(f.repo, f.days)

	before, err := list.Execute(ctx, f.salon.ID, f.calendar.ID, bookingDate)
	require.NoError(t, err)
	assert.Empty(t, before)

	_, err = f.create(Options{}).Execute(ctx, f.input("10:00", ""))
	require.NoError(t, err)

	after, err := list.Execute(ctx, f.salon.ID, f.calendar.ID, bookingDate)
	require.NoError(t, err)
	assert.Len(t, after, 1)
}

func TestCreate_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	uc := f.create(Options{})

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), f.input("10:00", ""))
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, httperr.CodeTimeConflict))
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, f.repo.AppointmentCount())
}

func TestCreate_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("10:00", "")
	in.CalendarID = 999
	_, err := f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCalendarNotFound))

	in = f.input("10:00", "")
	in.ServiceID = 999
	_, err = f.create(Options{}).Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
}

func TestCreate_PublicServiceMustBeOffered(t *testing.T) {
	f := newFixture(t)

	in := f.input("09:00", "")
	in.Public = true
	in.CalendarID = f.other.ID
	in.ServiceID = f.color.ID // Bia só faz corte

	_, err := f.create(Options{}).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceNotFound))
	assert.Zero(t, f.repo.AppointmentCount())
}
