package models

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the derived event date form used for grid bucketing and filtering.
	DateLayout = "2006-01-02"
	// TimeLayout is the derived time-of-day form used for filtering.
	TimeLayout = "15:04"
	// Unavailable is derived for events without a usable start timestamp.
	Unavailable = "N/A"
)

// Event is the normalised event consumed by the calendar and filter logic.
// It is built once at the API boundary and never mutated afterwards.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	OrganizerName    string    `json:"organizerName"`
	OrganizationName string    `json:"organizationName"`
	SponsorName      string    `json:"sponsorName,omitempty"`
	Capacity         int       `json:"capacity"`
	Registrations    int       `json:"registrations"`
	FeeCents         int64     `json:"feeCents"`
}

// Date returns the calendar date portion of Start, or Unavailable.
func (e Event) Date() string {
	if e.Start.IsZero() {
		return Unavailable
	}
	return e.Start.Format(DateLayout)
}

// Time returns the time-of-day portion of Start, or Unavailable.
func (e Event) Time() string {
	if e.Start.IsZero() {
		return Unavailable
	}
	return e.Start.Format(TimeLayout)
}

// FeeLabel renders the fee for display; zero is "Free".
func (e Event) FeeLabel() string {
	if e.FeeCents <= 0 {
		return "Free"
	}
	return fmt.Sprintf("$%d.%02d", e.FeeCents/100, e.FeeCents%100)
}

// SeatsLeft is the remaining capacity, never negative.
func (e Event) SeatsLeft() int {
	left := e.Capacity - e.Registrations
	if left < 0 {
		return 0
	}
	return left
}
