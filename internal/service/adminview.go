package service

import (
	"sort"
	"strings"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

// Filters narrows the admin list.  Each field is optional; an empty
// value means no constraint on that field.  All present filters compose
// with logical AND.
type Filters struct {
	Date        string // day granularity, any parseable date form
	TeacherName string // exact string equality
	ClassName   string // exact string equality
}

// Match reports whether a booking satisfies every present filter.
func (f Filters) Match(b model.Booking) bool {
	if f.Date != "" && model.NormalizeDate(b.Date) != model.NormalizeDate(f.Date) {
		return false
	}
	if f.TeacherName != "" && b.Name != f.TeacherName {
		return false
	}
	if f.ClassName != "" && b.Class != f.ClassName {
		return false
	}
	return true
}

// Empty reports whether no filter is set.
func (f Filters) Empty() bool {
	return f.Date == "" && f.TeacherName == "" && f.ClassName == ""
}

// DeriveView computes the admin list from the full booking set:
//
//  1. apply the filters,
//  2. partition into pending and not-pending (approved or rejected),
//  3. sort pending by created_at ascending, so the oldest unhandled
//     request surfaces first for admin action,
//  4. sort not-pending by booking date descending, a review ordering
//     independent of when the decision was made,
//  5. concatenate pending first.
//
// The result is a pure function of its inputs and carries no state of
// its own.  Both the admin list endpoint and the report export consume
// exactly this sequence.
func DeriveView(bookings []model.Booking, f Filters) []model.Booking {
	pending := make([]model.Booking, 0, len(bookings))
	decided := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !f.Match(b) {
			continue
		}
		if b.Status == model.StatusPending {
			pending = append(pending, b)
		} else {
			decided = append(decided, b)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	sort.SliceStable(decided, func(i, j int) bool {
		// Dates are normalized yyyy-MM-dd, so string order is date order.
		return strings.Compare(model.NormalizeDate(decided[i].Date), model.NormalizeDate(decided[j].Date)) > 0
	})
	return append(pending, decided...)
}
