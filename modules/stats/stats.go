package stats

import (
	"github.com/google/uuid"
)

// Status is an attendee's registration state.
type Status int

const (
	StatusWaiting   Status = iota // on the waiting list
	StatusConfirmed               // holds a seat
	StatusCancelled               // gave the seat back
)

// Attendee is one registration in an event's live attendee set. Cancelled
// is an independent flag kept alongside Status: an attendee cancelled
// through the flag counts as cancelled no matter what Status says.
type Attendee struct {
	ID        uuid.UUID `json:"id"`
	EventID   uuid.UUID `json:"event_id"`
	Status    Status    `json:"status"`
	Cancelled bool      `json:"cancelled"`
	Attended  bool      `json:"attended"`
}

// EventStats holds the occupancy and attendance figures for one event.
type EventStats struct {
	Total             int     `json:"total"`
	Confirmed         int     `json:"confirmed"`
	Cancelled         int     `json:"cancelled"`
	Waiting           int     `json:"waiting"`
	Attended          int     `json:"attended"`
	AvailableCapacity int     `json:"available_capacity"`
	FillRate          float64 `json:"fill_rate"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// Compute derives EventStats from an attendee snapshot. It is pure: the
// same snapshot and capacity always produce the same figures, which is what
// makes the result safe to cache.
//
// Capacity-derived figures are zero when the event has no capacity cap;
// attendance rate is zero when nobody is confirmed.
func Compute(attendees []Attendee, maxCapacity int) EventStats {
	s := EventStats{Total: len(attendees)}

	for _, a := range attendees {
		switch {
		case a.Cancelled || a.Status == StatusCancelled:
			s.Cancelled++
		case a.Status == StatusConfirmed:
			s.Confirmed++
		default:
			s.Waiting++
		}
		if a.Attended {
			s.Attended++
		}
	}

	if maxCapacity > 0 {
		s.AvailableCapacity = max(0, maxCapacity-s.Confirmed)
		s.FillRate = float64(s.Confirmed) / float64(maxCapacity) * 100
	}
	if s.Confirmed > 0 {
		s.AttendanceRate = float64(s.Attended) / float64(s.Confirmed) * 100
	}

	return s
}
