package game

import (
	"fmt"
	"time"
)

// Period and freshness labels. The intra-day periods and the signature age
// buckets deliberately share names: a signature cast at the start of a day is
// Fresh for 6 hours, Warm for the next 12 and Cooling for the last 6 of its
// 24 hour TTL, mirroring the day's own bands.
const (
	PeriodFresh   = "Fresh"
	PeriodWarm    = "Warm"
	PeriodCooling = "Cooling"
	TrainExpired  = "Expired"
)

// Clock maps wall-clock time to calendar game days and intra-day periods in
// the game's fixed reference time zone. All methods are pure.
type Clock struct {
	loc *time.Location
}

func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load game timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

// Day returns the calendar day index of t: days since the Unix epoch, cut at
// local midnight in the reference zone.
func (c *Clock) Day(t time.Time) int64 {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// Period returns the intra-day period of t: Fresh before 06:00 local, Warm
// until 18:00, Cooling until midnight.
func (c *Clock) Period(t time.Time) string {
	switch hour := t.In(c.loc).Hour(); {
	case hour < 6:
		return PeriodFresh
	case hour < 18:
		return PeriodWarm
	default:
		return PeriodCooling
	}
}

// FreshnessBucket labels a signature age in hours.
func FreshnessBucket(hours float64) string {
	switch {
	case hours < 6:
		return PeriodFresh
	case hours < 18:
		return PeriodWarm
	case hours < 24:
		return PeriodCooling
	default:
		return TrainExpired
	}
}
