package slot

import (
	"errors"
	"strings"
)

// Keys is the fixed ordered alphabet of slot identifiers for one week:
// four slots per day across four days. The set is never reordered or renamed.
var Keys = []string{
	"A", "B", "C", "D",
	"E", "F", "G", "H",
	"I", "J", "K", "L",
	"M", "N", "O", "P",
}

// Rows groups the keys four at a time under their shared date header.
// This grouping is presentation data; occupancy logic only uses Keys.
var Rows = [][]string{
	{"A", "B", "C", "D"},
	{"E", "F", "G", "H"},
	{"I", "J", "K", "L"},
	{"M", "N", "O", "P"},
}

var validKeys = map[string]bool{}

func init() {
	for _, key := range Keys {
		validKeys[key] = true
	}
}

// IsValidKey reports whether key is one of the sixteen slot identifiers.
func IsValidKey(key string) bool {
	return validKeys[key]
}

// Tier classifies how many participants selected a slot.
type Tier string

// Quorum tiers. Thresholds are fixed domain constants, not configurable.
const (
	TierZero   Tier = "zero"   // nobody yet
	TierBarely Tier = "barely" // 1-2
	TierClose  Tier = "close"  // 3-4
	TierQuorum Tier = "quorum" // 5+
)

// ClassifyCount maps an attendance count to its quorum tier.
// INVARIANT: pure; deterministic for every count >= 0
func ClassifyCount(count int) Tier {
	switch {
	case count >= 5:
		return TierQuorum
	case count >= 3:
		return TierClose
	case count >= 1:
		return TierBarely
	default:
		return TierZero
	}
}

// Forecast is an optional weather summary supplied with a slot.
type Forecast struct {
	ShortForecast              string `json:"shortForecast"`
	ShortForecastEmoji         string `json:"ShortForecastEmoji"`
	Temperature                int    `json:"temperature"`
	TemperatureUnit            string `json:"temperatureUnit"`
	ProbabilityOfPrecipitation int    `json:"ProbabilityOfPrecipitation"`
	WindSpeed                  string `json:"windSpeed"`
}

// IsZero reports whether no forecast was supplied.
func (f Forecast) IsZero() bool {
	return f.ShortForecast == ""
}

// Domain errors
var (
	ErrInvalidKey = errors.New("slot key must be one of the letters A through P")
	ErrEmptyTime  = errors.New("slot time cannot be empty")
)

// Slot is one bookable time option for the week's event. Supplied entirely by
// the backend snapshot and immutable for the duration of a session.
type Slot struct {
	Key      string   `json:"key"`
	Date     string   `json:"date"` // e.g. "Monday 1/2"
	Day      string   `json:"day"`  // e.g. "Mon"
	Time     string   `json:"time"` // e.g. "11AM"
	Forecast Forecast `json:"forecast"`
}

// Validate checks that the Slot has valid data.
// PRE: Slot struct is populated from a snapshot
// POST: Returns nil if valid, error otherwise
func (s *Slot) Validate() error {
	if !IsValidKey(s.Key) {
		return ErrInvalidKey
	}
	if strings.TrimSpace(s.Time) == "" {
		return ErrEmptyTime
	}
	return nil
}

// IsZero reports whether the slot is the zero value (key lookup miss).
func (s Slot) IsZero() bool {
	return s.Key == ""
}

// FullStartTime renders "Monday 1/2 at 11AM" from the slot's date and time.
func (s Slot) FullStartTime() string {
	return s.Date + " at " + s.Time
}

// FullStartTimeWithAdjustedTime renders the slot's date with an organizer
// supplied time replacing the default (used to pick out half-times).
func (s Slot) FullStartTimeWithAdjustedTime(adjusted string) string {
	if strings.TrimSpace(adjusted) == "" {
		return s.FullStartTime()
	}
	return s.Date + " at " + adjusted
}

// Slots is the week's full set of slots in key order.
type Slots []Slot

// ByKey returns the slot with the given key, or the zero Slot.
func (s Slots) ByKey(key string) Slot {
	for _, sl := range s {
		if sl.Key == key {
			return sl
		}
	}
	return Slot{}
}
