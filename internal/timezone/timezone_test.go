package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, "UTC", Location("UTC").String())
	assert.Equal(t, DefaultTimezone, Location("").String())
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2026-03-09", "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC), got)

	_, err = ParseDateTime("UTC", "2026-03-09", "24:30")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("UTC", "2026-03-09")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())

	_, err = ParseDate("UTC", "09/03/2026")
	assert.Error(t, err)
}
