package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)
	marchStart := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		preset   Preset
		from, to time.Time
	}{
		{Today, now, now},
		{Last7Days, time.Date(2025, 3, 8, 14, 30, 0, 0, time.UTC), now},
		{Last30Days, time.Date(2025, 2, 13, 14, 30, 0, 0, time.UTC), now},
		{ThisMonth, marchStart, now},
		{LastMonth, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), marchStart.Add(-time.Nanosecond)},
		{Preset("bogus"), marchStart, now},
	}
	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			r := Resolve(tt.preset, now)
			assert.True(t, tt.from.Equal(r.From), "from = %v, want %v", r.From, tt.from)
			assert.True(t, tt.to.Equal(r.To), "to = %v, want %v", r.To, tt.to)
			assert.NoError(t, r.Validate())
		})
	}
}

func TestLastMonthAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	r := Resolve(LastMonth, now)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), r.From)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 999999999, time.UTC), r.To)
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset("LAST7DAYS")
	require.NoError(t, err)
	assert.Equal(t, Last7Days, p)

	_, err = ParsePreset("thisYear")
	assert.ErrorIs(t, err, ErrUnknownPreset)

	for _, info := range Presets() {
		assert.True(t, info.Preset.Valid())
		assert.NotEmpty(t, info.Label)
	}
	assert.Len(t, Presets(), 5)
}

func TestEndOfDay(t *testing.T) {
	d := time.Date(2025, 2, 28, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 999999999, time.UTC), EndOfDay(d))
}
