package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func ids(bookings []model.Booking) []uint64 {
	out := make([]uint64, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, b.ID)
	}
	return out
}

// Pending requests come first oldest-first, then decided ones by
// booking date descending.
func TestDeriveViewOrdering(t *testing.T) {
	p1 := model.Booking{ID: 1, Status: model.StatusPending, Date: "2025-06-03", CreatedAt: mustTime(t, "2025-05-01T10:00:00Z")}
	p2 := model.Booking{ID: 2, Status: model.StatusPending, Date: "2025-06-01", CreatedAt: mustTime(t, "2025-05-02T10:00:00Z")}
	a1 := model.Booking{ID: 3, Status: model.StatusApproved, Date: "2025-06-05", CreatedAt: mustTime(t, "2025-05-03T10:00:00Z")}
	a2 := model.Booking{ID: 4, Status: model.StatusApproved, Date: "2025-06-07", CreatedAt: mustTime(t, "2025-05-04T10:00:00Z")}

	view := DeriveView([]model.Booking{a1, p2, a2, p1}, Filters{})
	assert.Equal(t, []uint64{1, 2, 4, 3}, ids(view))
}

func TestDeriveViewRejectedGroupsWithApproved(t *testing.T) {
	r := model.Booking{ID: 1, Status: model.StatusRejected, Date: "2025-06-09"}
	a := model.Booking{ID: 2, Status: model.StatusApproved, Date: "2025-06-05"}
	p := model.Booking{ID: 3, Status: model.StatusPending, Date: "2025-06-01"}

	view := DeriveView([]model.Booking{a, r, p}, Filters{})
	assert.Equal(t, []uint64{3, 1, 2}, ids(view), "rejected sorts with approved by date desc")
}

func TestDeriveViewFiltersCompose(t *testing.T) {
	b1 := model.Booking{ID: 1, Name: "Ada", Class: "Math", Date: "2025-06-01", Status: model.StatusPending}
	b2 := model.Booking{ID: 2, Name: "Ada", Class: "Physics", Date: "2025-06-01", Status: model.StatusPending}
	b3 := model.Booking{ID: 3, Name: "Grace", Class: "Math", Date: "2025-06-02", Status: model.StatusPending}
	all := []model.Booking{b1, b2, b3}

	assert.Equal(t, []uint64{1, 2}, ids(DeriveView(all, Filters{TeacherName: "Ada"})))
	assert.Equal(t, []uint64{1, 3}, ids(DeriveView(all, Filters{ClassName: "Math"})))
	assert.Equal(t, []uint64{1}, ids(DeriveView(all, Filters{TeacherName: "Ada", ClassName: "Math"})))
	assert.Equal(t, []uint64{3}, ids(DeriveView(all, Filters{Date: "2025-06-02"})))
}

func TestDeriveViewDateFilterDayGranularity(t *testing.T) {
	b := model.Booking{ID: 1, Date: "2025-06-01", Status: model.StatusPending}
	view := DeriveView([]model.Booking{b}, Filters{Date: "2025-06-01T15:00:00Z"})
	assert.Equal(t, []uint64{1}, ids(view))
}

func TestDeriveViewNameIsCaseSensitive(t *testing.T) {
	b := model.Booking{ID: 1, Name: "Ada", Status: model.StatusPending}
	assert.Empty(t, DeriveView([]model.Booking{b}, Filters{TeacherName: "ada"}))
}

func TestDeriveViewNoMatchesIsEmptyNotError(t *testing.T) {
	b := model.Booking{ID: 1, Name: "Ada", Status: model.StatusPending}
	view := DeriveView([]model.Booking{b}, Filters{TeacherName: "Nobody"})
	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestDeriveViewPureFunction(t *testing.T) {
	in := []model.Booking{
		{ID: 1, Status: model.StatusApproved, Date: "2025-06-01"},
		{ID: 2, Status: model.StatusPending, Date: "2025-06-02"},
	}
	first := DeriveView(in, Filters{})
	second := DeriveView(in, Filters{})
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), in[0].ID, "input order untouched")
}

func TestFiltersEmpty(t *testing.T) {
	assert.True(t, Filters{}.Empty())
	assert.False(t, Filters{Date: "2025-06-01"}.Empty())
}
