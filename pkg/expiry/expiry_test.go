package expiry

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVisible(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"nil expiry never hides", nil, true},
		{"future expiry visible", timePtr(now.Add(time.Hour)), true},
		{"past expiry hidden", timePtr(now.Add(-time.Minute)), false},
		{"expiring exactly now is hidden", timePtr(now), false},
		{"one second ahead visible", timePtr(now.Add(time.Second)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(tt.expiresAt, now))
		})
	}
}

func TestClassifyUrgentBoundary(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	almostDay := Classify(now.Add(23*time.Hour+59*time.Minute), now)
	assert.True(t, almostDay.Urgent)

	exactDay := Classify(now.Add(24*time.Hour), now)
	assert.False(t, exactDay.Urgent)
}

func TestClassifyUrgentLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	// 30 minutes out: urgent with the literal clock time and 0 whole hours.
	c := Classify(now.Add(30*time.Minute), now)
	require.True(t, c.Urgent)
	assert.Equal(t, "expires at 9:30 AM (0 hours left)", c.Label)

	c = Classify(now.Add(5*time.Hour+45*time.Minute), now)
	require.True(t, c.Urgent)
	assert.Equal(t, "expires at 2:45 PM (5 hours left)", c.Label)
}

func TestClassifyTomorrowUsesCalendarDay(t *testing.T) {
	// 11 PM now, expiry 11:30 PM the next day: more than 24h away but
	// still the very next calendar day.
	now := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	c := Classify(time.Date(2025, 6, 16, 23, 30, 0, 0, time.UTC), now)

	assert.False(t, c.Urgent)
	assert.Equal(t, "expires tomorrow at 11:30 PM", c.Label)
}

func TestClassifyDaysOut(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	c := Classify(time.Date(2025, 6, 18, 18, 0, 0, 0, time.UTC), now)
	assert.False(t, c.Urgent)
	assert.Equal(t, "expires in 3 days at 6:00 PM", c.Label)

	c = Classify(time.Date(2025, 6, 25, 8, 15, 0, 0, time.UTC), now)
	assert.False(t, c.Urgent)
	assert.Equal(t, "expires in 10 days at 8:15 AM", c.Label)
}

func TestClassifyExpiredInputFailsSafe(t *testing.T) {
	// Callers must pre-filter with IsVisible; if one slips through,
	// Classify must not claim urgency or panic.
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	assert.NotPanics(t, func() {
		c := Classify(now.Add(-2*time.Hour), now)
		assert.False(t, c.Urgent)
		assert.NotEmpty(t, c.Label)
	})
}

func TestClassifyUsesViewerLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, loc)

	// Expiry stored in UTC; the label must render in now's zone.
	expires := time.Date(2025, 6, 15, 5, 0, 0, 0, time.UTC) // 12:00 PM UTC+7
	c := Classify(expires, now)

	require.True(t, c.Urgent)
	assert.Equal(t, "expires at 12:00 PM (3 hours left)", c.Label)
}

func TestCalendarDaysBetween(t *testing.T) {
	loc := time.UTC
	base := time.Date(2025, 6, 15, 22, 0, 0, 0, loc)

	tests := []struct {
		b    time.Time
		want int
	}{
		{time.Date(2025, 6, 15, 23, 59, 0, 0, loc), 0},
		{time.Date(2025, 6, 16, 0, 1, 0, 0, loc), 1},
		{time.Date(2025, 6, 17, 1, 0, 0, 0, loc), 2},
		{time.Date(2025, 7, 15, 9, 0, 0, 0, loc), 30},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d days", tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, calendarDaysBetween(base, tt.b))
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
