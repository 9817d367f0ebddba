package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings.  It is the only
// component that talks to the bookings table; the comma-separated times
// column is converted to the canonical model.TimeSlots representation
// here so that no other layer ever sees the raw string.  All timestamp
// columns are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle for callers that need to manage
// transactions themselves.
func (r *BookingRepo) DB() *sql.DB { return r.db }

const bookingColumns = `id, name, class, DATE_FORMAT(date, '%Y-%m-%d'), times, status, created_at, updated_at`

// scanBooking reads one row into a model.Booking, normalizing the times
// column.  The row must select bookingColumns in order.
func scanBooking(scan func(dest ...interface{}) error) (model.Booking, error) {
	var b model.Booking
	var times string
	if err := scan(&b.ID, &b.Name, &b.Class, &b.Date, &times, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return model.Booking{}, err
	}
	b.Times = model.ParseSlotString(times)
	return b, nil
}

// collect drains rows into a slice of bookings.  An empty result yields
// an empty, non-nil slice.
func collect(rows *sql.Rows) ([]model.Booking, error) {
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByDate returns all bookings for a single day ordered by creation
// time descending (newest first).  The date must be in yyyy-MM-dd form.
func (r *BookingRepo) ListByDate(ctx context.Context, date string) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE date = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListAll returns every booking ordered by creation time descending.
// The admin view model re-orders the result; this ordering only fixes a
// deterministic baseline.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListByName returns the most recent bookings submitted under the exact
// (case-sensitive) name, newest first, truncated to limit.
func (r *BookingRepo) ListByName(ctx context.Context, name string, limit int) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE BINARY name = ? ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, name, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Insert creates a new pending booking and returns the stored row with
// its generated ID and timestamps.  Status is always pending on
// creation; callers cannot choose it.
func (r *BookingRepo) Insert(ctx context.Context, name, class, date string, times model.TimeSlots) (model.Booking, error) {
	const q = `INSERT INTO bookings (name, class, date, times, status) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, name, class, date, times.String(), model.StatusPending)
	if err != nil {
		return model.Booking{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Booking{}, err
	}
	// Query back the full row to populate store-assigned timestamps.
	const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	return scanBooking(r.db.QueryRowContext(ctx, sel, uint64(id)).Scan)
}

// UpdateStatus sets the status of a single booking.  It returns
// ErrBookingNotFound when no row matches the id.  The store applies
// last-write-wins semantics; concurrent updates are not coordinated
// here.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish a missing row from a no-op update on the same status.
		const sel = `SELECT COUNT(*) FROM bookings WHERE id = ?`
		var count int
		if err := r.db.QueryRowContext(ctx, sel, id).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return ErrBookingNotFound
		}
	}
	return nil
}
