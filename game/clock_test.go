package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pacific(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

func TestClockDayBoundary(t *testing.T) {
	clock, err := NewClock("America/Los_Angeles")
	require.NoError(t, err)
	loc := pacific(t)

	beforeMidnight := time.Date(2026, 8, 28, 23, 59, 0, 0, loc)
	afterMidnight := time.Date(2026, 8, 29, 0, 1, 0, 0, loc)

	assert.Equal(t, clock.Day(beforeMidnight)+1, clock.Day(afterMidnight))
}

func TestClockDayUsesReferenceZone(t *testing.T) {
	clock, err := NewClock("America/Los_Angeles")
	require.NoError(t, err)
	loc := pacific(t)

	// 02:00 UTC on Jan 15 is still the evening of Jan 14 in Pacific time.
	utcEvening := time.Date(2026, 1, 15, 2, 0, 0, 0, time.UTC)
	pacificSameDay := time.Date(2026, 1, 14, 12, 0, 0, 0, loc)

	assert.Equal(t, clock.Day(pacificSameDay), clock.Day(utcEvening))
}

func TestClockPeriods(t *testing.T) {
	clock, err := NewClock("America/Los_Angeles")
	require.NoError(t, err)
	loc := pacific(t)

	tests := []struct {
		hour, minute int
		want         string
	}{
		{0, 0, PeriodFresh},
		{5, 59, PeriodFresh},
		{6, 0, PeriodWarm},
		{12, 30, PeriodWarm},
		{17, 59, PeriodWarm},
		{18, 0, PeriodCooling},
		{23, 59, PeriodCooling},
	}
	for _, tt := range tests {
		at := time.Date(2026, 8, 28, tt.hour, tt.minute, 0, 0, loc)
		assert.Equal(t, tt.want, clock.Period(at), "at %02d:%02d", tt.hour, tt.minute)
	}
}

func TestClockRejectsUnknownZone(t *testing.T) {
	_, err := NewClock("Not/AZone")
	assert.Error(t, err)
}

func TestFreshnessBucket(t *testing.T) {
	assert.Equal(t, PeriodFresh, FreshnessBucket(0))
	assert.Equal(t, PeriodFresh, FreshnessBucket(5.9))
	assert.Equal(t, PeriodWarm, FreshnessBucket(6))
	assert.Equal(t, PeriodWarm, FreshnessBucket(17.9))
	assert.Equal(t, PeriodCooling, FreshnessBucket(18))
	assert.Equal(t, PeriodCooling, FreshnessBucket(23.9))
	assert.Equal(t, TrainExpired, FreshnessBucket(24))
}
