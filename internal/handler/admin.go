package handler

import (
	"crypto/subtle"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/teacher-slot-booking/internal/model"
	"github.com/iliyamo/teacher-slot-booking/internal/repository"
	"github.com/iliyamo/teacher-slot-booking/internal/service"
	"github.com/iliyamo/teacher-slot-booking/internal/utils"
)

// AdminHandler serves the approval panel: login, the filtered/sorted
// booking list, status changes and report export.  The list and the
// export both consume service.DeriveView so that what the admin sees is
// exactly what gets exported.
type AdminHandler struct {
	Store BookingStore
	// Password is compared by plain string equality.  This is a
	// placeholder gate, not real authentication; do not extend it to
	// handle real credentials.
	Password     string
	JWTSecret    string
	AccessTTLMin int

	inflight *inflightSet
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(store BookingStore, password, jwtSecret string, accessTTLMin int) *AdminHandler {
	if store == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{
		Store:        store,
		Password:     password,
		JWTSecret:    jwtSecret,
		AccessTTLMin: accessTTLMin,
		inflight:     newInflightSet(),
	}
}

// Login handles POST /v1/admin/login.  A matching password yields a
// short-lived access token for the admin group.
func (h *AdminHandler) Login(c echo.Context) error {
	var body struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if h.Password == "" || subtle.ConstantTimeCompare([]byte(body.Password), []byte(h.Password)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "incorrect password"})
	}
	tok, err := utils.NewAccessToken(h.JWTSecret, "admin", h.AccessTTLMin)
	if err != nil {
		log.Printf("admin: sign token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"access_token": tok.Token,
		"expires_at":   tok.Exp.Format(time.RFC3339),
	})
}

// filtersFromQuery reads the optional date/name/class query parameters.
func filtersFromQuery(c echo.Context) service.Filters {
	return service.Filters{
		Date:        strings.TrimSpace(c.QueryParam("date")),
		TeacherName: strings.TrimSpace(c.QueryParam("name")),
		ClassName:   strings.TrimSpace(c.QueryParam("class")),
	}
}

// loadView loads the full booking list and derives the admin view for
// the given filters.
func (h *AdminHandler) loadView(c echo.Context, f service.Filters) ([]model.Booking, error) {
	all, err := h.Store.ListAll(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return service.DeriveView(all, f), nil
}

// ListBookings handles GET /v1/admin/bookings.  Optional query
// parameters date, name and class filter the list; pending requests
// come first, oldest first, followed by decided ones by booking date
// descending.  The processing list carries the ids with a status update
// in flight so clients can disable their action buttons.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	view, err := h.loadView(c, filtersFromQuery(c))
	if err != nil {
		log.Printf("admin: list bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bookings":   view,
		"processing": h.inflight.Active(),
	})
}

// SetStatus handles PATCH /v1/admin/bookings/:id/status with a body of
// {"status": "approved"|"rejected"}.  While an update for a booking id
// is in flight, further attempts on the same id get 409.  After the
// update the full source list is reloaded so the returned view is
// recomputed against fresh data, never patched in place.
func (h *AdminHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if !model.ValidStatusChange(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be approved or rejected"})
	}

	if !h.inflight.Begin(id) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "booking is already being processed"})
	}

	if err := h.Store.UpdateStatus(c.Request().Context(), id, body.Status); err != nil {
		h.inflight.End(id)
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		log.Printf("admin: update status of booking %d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update booking"})
	}

	view, err := h.loadView(c, filtersFromQuery(c))
	// The slot must be released before the processing snapshot below, or
	// the response would advertise the settled id as still in flight.
	h.inflight.End(id)
	if err != nil {
		log.Printf("admin: reload after status change failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "status updated but reload failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"booking_id": id,
		"status":     body.Status,
		"bookings":   view,
		"processing": h.inflight.Active(),
	})
}

// ExportReport handles GET /v1/admin/report.  It renders the current
// derived view — honoring the same date/name/class filters as the list
// — as a downloadable HTML or CSV document.  Row order matches the list
// exactly; the export itself performs no sorting.
func (h *AdminHandler) ExportReport(c echo.Context) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = service.FormatHTML
	}
	if format != service.FormatHTML && format != service.FormatCSV {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "format must be html or csv"})
	}

	view, err := h.loadView(c, filtersFromQuery(c))
	if err != nil {
		log.Printf("admin: export failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	report := service.BuildReport(view, time.Now())

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+report.Filename(format)+`"`)
	if format == service.FormatCSV {
		c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		c.Response().WriteHeader(http.StatusOK)
		return report.RenderCSV(c.Response())
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return report.RenderHTML(c.Response())
}
