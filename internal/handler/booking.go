package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
	"github.com/iliyamo/teacher-slot-booking/internal/queue"
	"github.com/iliyamo/teacher-slot-booking/internal/service"
)

// BookingHandler serves the public booking endpoints: submitting a
// request, listing a day's bookings and reading the slot grid.  After a
// successful submission it fires two asynchronous side effects — an
// HTTP call to the notification endpoint and a broker event — neither
// of which can affect the submission's own outcome.
type BookingHandler struct {
	Store BookingStore
	// NotifyURL is where the admin-notification request is POSTed after a
	// successful submission.  Empty disables the call.
	NotifyURL string
	// PublishEvent publishes the booking.requested broker event.  Nil
	// disables publishing.  Overridable in tests.
	PublishEvent func(ctx context.Context, ev queue.BookingRequestedEvent) error
}

// NewBookingHandler constructs a BookingHandler wired to the default
// queue publisher.
func NewBookingHandler(store BookingStore, notifyURL string) *BookingHandler {
	if store == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{
		Store:        store,
		NotifyURL:    notifyURL,
		PublishEvent: service.PublishBookingRequested,
	}
}

// submitRequest is the submission payload.  Times tolerates both a
// number array and a "9,10" string; see model.TimeSlots.  Email is only
// forwarded to the notification fan-out, never stored.
type submitRequest struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Class string          `json:"class"`
	Date  string          `json:"date"`
	Times model.TimeSlots `json:"times"`
}

// Submit handles POST /v1/bookings.  Validation failures are reported
// before any store call; a store failure returns 500 and the client
// keeps its draft for manual resubmission.  On success the stored
// booking is returned with status 201 and the notification side
// effects are spawned in the background.
func (h *BookingHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Class = strings.TrimSpace(req.Class)
	req.Date = model.NormalizeDate(req.Date)

	if req.Name == "" || req.Class == "" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "name and class are required"})
	}
	if len(req.Times) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "select at least one time slot"})
	}
	if _, err := time.Parse(model.DateLayout, req.Date); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid date, expected yyyy-MM-dd"})
	}
	for _, hour := range req.Times {
		if !service.ValidHour(hour) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "time slots must be between 8:00 and 17:00"})
		}
	}

	booking, err := h.Store.Insert(c.Request().Context(), req.Name, req.Class, req.Date, req.Times)
	if err != nil {
		log.Printf("booking: insert failed for %q on %s: %v", req.Name, req.Date, err)
		// Echo the draft back so the client can retain it for resubmission.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking", "draft": req})
	}

	// Fire-and-forget side effects.  Failures are logged, never surfaced
	// to the submitter, and never roll back the booking.
	go h.notifyAdmins(req, booking)
	go h.publishRequested(booking)

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// ListByDate handles GET /v1/bookings?date=yyyy-MM-dd.  It returns the
// day's bookings newest first, for clients that render the form grid.
func (h *BookingHandler) ListByDate(c echo.Context) error {
	date := model.NormalizeDate(c.QueryParam("date"))
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter is required (yyyy-MM-dd)"})
	}
	bookings, err := h.Store.ListByDate(c.Request().Context(), date)
	if err != nil {
		log.Printf("booking: list by date %s failed: %v", date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "bookings": bookings})
}

// Slots handles GET /v1/slots?date=yyyy-MM-dd.  It reports for every
// bookable hour whether it is already booked-and-approved on that day.
func (h *BookingHandler) Slots(c echo.Context) error {
	date := model.NormalizeDate(c.QueryParam("date"))
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date query parameter is required (yyyy-MM-dd)"})
	}
	bookings, err := h.Store.ListByDate(c.Request().Context(), date)
	if err != nil {
		log.Printf("booking: list by date %s failed: %v", date, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "slots": service.DaySlots(date, bookings)})
}

// notifyPayload mirrors the body expected by POST /notify.
type notifyPayload struct {
	Name        string      `json:"name"`
	Email       string      `json:"email,omitempty"`
	BookingInfo interface{} `json:"bookingInfo"`
}

// notifyAdmins POSTs the submitted draft to the notification endpoint.
// The call is out-of-band: any failure is logged and dropped.
func (h *BookingHandler) notifyAdmins(req submitRequest, booking model.Booking) {
	if h.NotifyURL == "" {
		return
	}
	body, err := json.Marshal(notifyPayload{
		Name:        req.Name,
		Email:       req.Email,
		BookingInfo: booking,
	})
	if err != nil {
		log.Printf("booking: marshal notify payload for booking %d: %v", booking.ID, err)
		return
	}
	resp, err := http.Post(h.NotifyURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("booking: notify call for booking %d failed: %v", booking.ID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("booking: notify call for booking %d returned %s", booking.ID, strconv.Itoa(resp.StatusCode))
	}
}

// publishRequested emits the booking.requested broker event.
func (h *BookingHandler) publishRequested(booking model.Booking) {
	if h.PublishEvent == nil {
		return
	}
	ev := queue.BookingRequestedEvent{
		BookingID:   booking.ID,
		Name:        booking.Name,
		Class:       booking.Class,
		Date:        booking.Date,
		TimeSlots:   booking.Times,
		Status:      booking.Status,
		RequestedAt: booking.CreatedAt.UTC().Format(time.RFC3339),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = h.PublishEvent(ctx, ev) // errors already logged by the publisher
}
