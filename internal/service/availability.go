// Package service holds the pure business rules of the booking
// application: slot-conflict checking, the admin list view model and
// report rendering.  Nothing in this package touches the network or the
// database; callers load bookings through the repository and pass them
// in.
package service

import (
	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

// IsTaken reports whether the given hour on the given date is already
// booked and approved.  Only approved bookings block a slot; pending
// and rejected requests never do.  The date is compared at day
// granularity.  Bookings whose times failed to normalize simply have no
// slots and therefore never match, so a malformed record reads as "not
// taken" rather than an error.
func IsTaken(hour int, date string, bookings []model.Booking) bool {
	day := model.NormalizeDate(date)
	for _, b := range bookings {
		if b.Status != model.StatusApproved {
			continue
		}
		if model.NormalizeDate(b.Date) != day {
			continue
		}
		if b.Times.Contains(hour) {
			return true
		}
	}
	return false
}

// SlotOpen and SlotClose bound the bookable day: hour markers 8 through
// 17 inclusive, matching the booking form's grid.
const (
	SlotOpen  = 8
	SlotClose = 17
)

// ValidHour reports whether the hour marker falls inside the bookable
// range.
func ValidHour(hour int) bool {
	return hour >= SlotOpen && hour <= SlotClose
}

// Slot describes the availability of a single hour on a given day.
type Slot struct {
	Hour  int  `json:"hour"`
	Taken bool `json:"taken"`
}

// DaySlots computes the availability of every bookable hour on the
// given date against the supplied bookings.
func DaySlots(date string, bookings []model.Booking) []Slot {
	out := make([]Slot, 0, SlotClose-SlotOpen+1)
	for h := SlotOpen; h <= SlotClose; h++ {
		out = append(out, Slot{Hour: h, Taken: IsTaken(h, date, bookings)})
	}
	return out
}
