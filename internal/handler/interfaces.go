package handler

import (
	"context"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

// BookingStore is the slice of the repository the handlers depend on.
// *repository.BookingRepo satisfies it; tests substitute in-memory
// fakes.
type BookingStore interface {
	// ListByDate returns the bookings for one yyyy-MM-dd day, newest first.
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
	// ListAll returns every booking, newest first.
	ListAll(ctx context.Context) ([]model.Booking, error)
	// ListByName returns up to limit bookings with the exact name, newest first.
	ListByName(ctx context.Context, name string, limit int) ([]model.Booking, error)
	// Insert stores a new pending booking and returns the stored row.
	Insert(ctx context.Context, name, class, date string, times model.TimeSlots) (model.Booking, error)
	// UpdateStatus sets a booking's status; repository.ErrBookingNotFound if absent.
	UpdateStatus(ctx context.Context, id uint64, status string) error
}
