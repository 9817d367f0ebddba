package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
	"github.com/iliyamo/teacher-slot-booking/internal/repository"
)

// fakeStore is an in-memory BookingStore for handler tests.  Error
// fields inject failures; updateGate, when set, blocks UpdateStatus
// until the channel is closed so tests can hold an update in flight.
type fakeStore struct {
	mu       sync.Mutex
	bookings []model.Booking
	nextID   uint64

	insertErr error
	listErr   error
	updateErr error

	inserts int

	updateGate    chan struct{}
	updateEntered chan struct{}
}

func newFakeStore(seed ...model.Booking) *fakeStore {
	s := &fakeStore{}
	for _, b := range seed {
		if b.ID > s.nextID {
			s.nextID = b.ID
		}
		s.bookings = append(s.bookings, b)
	}
	return s
}

func (s *fakeStore) snapshot() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out
}

func (s *fakeStore) ListByDate(_ context.Context, date string) ([]model.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	day := model.NormalizeDate(date)
	var out []model.Booking
	for _, b := range s.snapshot() {
		if model.NormalizeDate(b.Date) == day {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAll(_ context.Context) ([]model.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.snapshot(), nil
}

func (s *fakeStore) ListByName(_ context.Context, name string, limit int) ([]model.Booking, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.Booking
	for _, b := range s.snapshot() {
		if b.Name == name {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) Insert(_ context.Context, name, class, date string, times model.TimeSlots) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts++
	if s.insertErr != nil {
		return model.Booking{}, s.insertErr
	}
	s.nextID++
	b := model.Booking{
		ID:        s.nextID,
		Name:      name,
		Class:     class,
		Date:      date,
		Times:     times,
		Status:    model.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
	s.bookings = append(s.bookings, b)
	return b, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	if s.updateEntered != nil {
		s.updateEntered <- struct{}{}
	}
	if s.updateGate != nil {
		<-s.updateGate
	}
	if s.updateErr != nil {
		return s.updateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			return nil
		}
	}
	return repository.ErrBookingNotFound
}
