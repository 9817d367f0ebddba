package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Booking statuses.  A booking is created as pending and is moved to
// approved or rejected exactly once by an admin.  The store itself does
// not enforce terminality; the approval handler simply never offers a
// way back.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatusChange reports whether s is a status an admin may assign.
// Setting a booking back to pending is possible at the store level but is
// deliberately not exposed.
func ValidStatusChange(s string) bool {
	return s == StatusApproved || s == StatusRejected
}

// DateLayout is the canonical day format used throughout the service.
// Dates carry no time-of-day component; the store column is a DATE.
const DateLayout = "2006-01-02"

// Booking records a teacher's request to reserve one or more teaching
// hours on a calendar date.
//
// Fields:
//  ID        – primary key identifier, assigned by the store.
//  Name      – submitter's display name.
//  Class     – subject/class label.
//  Date      – the reserved day, formatted as yyyy-MM-dd.
//  Times     – requested hour markers within [8,17].
//  Status    – pending, approved or rejected.
//  CreatedAt – insertion timestamp, immutable.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	Name      string    `json:"name"`       // bookings.name
	Class     string    `json:"class"`      // bookings.class
	Date      string    `json:"date"`       // bookings.date (yyyy-MM-dd)
	Times     TimeSlots `json:"times"`      // bookings.times (stored as "9,10")
	Status    string    `json:"status"`     // bookings.status
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
	UpdatedAt time.Time `json:"updated_at"` // bookings.updated_at
}

// TimeSlots is the canonical in-memory representation of a booking's
// requested hours: an ordered slice of integer hour markers.  The store
// persists the slots as a comma-separated string and older clients post
// them the same way, so normalization to []int happens once, at this
// boundary, and nothing deeper in the call graph branches on the shape.
type TimeSlots []int

// UnmarshalJSON accepts either a JSON array of numbers ([9,10]) or a
// delimited string ("9,10").  Anything else normalizes to an empty slot
// list rather than an error.
func (t *TimeSlots) UnmarshalJSON(b []byte) error {
	var nums []int
	if err := json.Unmarshal(b, &nums); err == nil {
		*t = normalizeSlots(nums)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = ParseSlotString(s)
		return nil
	}
	*t = TimeSlots{}
	return nil
}

// String renders the slots in the stored form, e.g. "9,10".
func (t TimeSlots) String() string {
	parts := make([]string, 0, len(t))
	for _, h := range t {
		parts = append(parts, strconv.Itoa(h))
	}
	return strings.Join(parts, ",")
}

// Contains reports whether the hour is among the slots.
func (t TimeSlots) Contains(hour int) bool {
	for _, h := range t {
		if h == hour {
			return true
		}
	}
	return false
}

// Labels renders each hour as "H:00" for display, e.g. ["9:00","10:00"].
func (t TimeSlots) Labels() []string {
	out := make([]string, 0, len(t))
	for _, h := range t {
		out = append(out, strconv.Itoa(h)+":00")
	}
	return out
}

// ParseSlotString converts a delimited hour string such as "9,10" or
// "9, 10" into TimeSlots.  Tokens that do not parse as integers are
// skipped; a blank string yields an empty slice.
func ParseSlotString(s string) TimeSlots {
	out := TimeSlots{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return normalizeSlots(out)
}

// ParseTimeSlots normalizes an untyped value into TimeSlots.  The value
// may be a []int, a []float64 or []interface{} (as produced by JSON
// decoding), a TimeSlots, or a delimited string.  Unsupported shapes
// yield an empty slice so that a malformed record reads as "no slots"
// instead of failing the caller.
func ParseTimeSlots(v interface{}) TimeSlots {
	switch val := v.(type) {
	case nil:
		return TimeSlots{}
	case TimeSlots:
		return normalizeSlots(val)
	case []int:
		return normalizeSlots(val)
	case string:
		return ParseSlotString(val)
	case []float64:
		out := make(TimeSlots, 0, len(val))
		for _, f := range val {
			out = append(out, int(f))
		}
		return normalizeSlots(out)
	case []interface{}:
		out := TimeSlots{}
		for _, item := range val {
			switch n := item.(type) {
			case float64:
				out = append(out, int(n))
			case int:
				out = append(out, n)
			case string:
				if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
					out = append(out, parsed)
				}
			}
		}
		return normalizeSlots(out)
	default:
		return TimeSlots{}
	}
}

// normalizeSlots sorts the hours ascending and drops duplicates.
// Duplicates are not meaningful in a booking.
func normalizeSlots(in []int) TimeSlots {
	out := make(TimeSlots, 0, len(in))
	seen := make(map[int]struct{}, len(in))
	for _, h := range in {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}

// NormalizeDate reduces a date string to day granularity (yyyy-MM-dd).
// RFC3339 timestamps and "yyyy-MM-dd HH:MM:SS" values are truncated to
// their date part; anything unparsable is returned trimmed as-is so that
// an exact-match comparison simply fails to match.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout)
		}
	}
	return s
}
