package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func sample() *domain.MonthBook {
	d := func(day, h int) time.Time { return time.Date(2026, 3, day, h, 0, 0, 0, time.UTC) }

	aps := []models.Appointment{
		{
			ID: 1, StartTime: d(9, 9), EndTime: d(9, 10), Status: "scheduled",
			Calendar: models.Calendar{Name: "Ana"},
			Client:   models.Client{Name: "Maria", Phone: "11999990000"},
			Service:  models.Service{Name: "Corte"},
		},
		{ID: 2, StartTime: d(9, 11), EndTime: d(9, 12), Status: "canceled"},
		{ID: 3, StartTime: d(12, 14), EndTime: d(12, 15), Status: "scheduled"},
	}
	return domain.NewMonthBook(aps, time.UTC)
}

func TestMonthly_Sheets(t *testing.T) {
	f, err := Monthly(sample(), "Março 2026")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetAppointments, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetAppointments)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, appointmentHeaders, rows[0])
	assert.Equal(t, []string{"2026-03-09", "09:00", "10:00", "Ana", "Maria", "11999990000", "Corte", "Agendado"}, rows[1])
	assert.Equal(t, "Cancelado", rows[2][7])
	assert.Equal(t, "2026-03-12", rows[3][0])
}

func TestMonthly_Summary(t *testing.T) {
	f, err := Monthly(sample(), "Março 2026")
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Março 2026", rows[0][0])
	assert.Equal(t, []string{"2026-03-09", "2", "1"}, rows[2])
	assert.Equal(t, []string{"2026-03-12", "1", "1"}, rows[3])
	assert.Equal(t, []string{"Total", "3", "2"}, rows[4])
}

func TestWrite_ProducesReadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(), "Março 2026"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetSummary, "B5")
	require.NoError(t, err)
	assert.Equal(t, "3", v)
}

func TestMonthly_EmptyMonth(t *testing.T) {
	f, err := Monthly(domain.NewMonthBook(nil, nil), "Vazio")
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total", "0", "0"}, rows[len(rows)-1])
}
