package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// statusLookupLimit bounds the status view to the submitter's most
// recent requests.
const statusLookupLimit = 5

// StatusHandler serves the teacher-facing status lookup.
type StatusHandler struct {
	Store BookingStore
}

// NewStatusHandler constructs a StatusHandler.
func NewStatusHandler(store BookingStore) *StatusHandler {
	if store == nil {
		panic("nil store passed to NewStatusHandler")
	}
	return &StatusHandler{Store: store}
}

// Check handles GET /v1/status?name=.  The name matches exactly and
// case-sensitively; results come newest first, capped at five.  An
// empty name is rejected rather than silently returning everything.
func (h *StatusHandler) Check(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("name"))
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name query parameter is required"})
	}
	bookings, err := h.Store.ListByName(c.Request().Context(), name, statusLookupLimit)
	if err != nil {
		log.Printf("status: lookup for %q failed: %v", name, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"name": name, "bookings": bookings})
}
