package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/teacher-slot-booking/internal/mailer"
)

// NotifyHandler implements the admin-notification fan-out endpoint.  It
// runs independently of the submission flow: the submitter's request
// has already succeeded by the time this handler is invoked.  Each
// configured recipient gets one independent send and one independent
// outcome; a failure for one recipient never prevents attempting the
// rest.
type NotifyHandler struct {
	Mailer *mailer.Client
	// Recipients is the raw comma-separated recipient list.  Empty means
	// the deployment is misconfigured and every request fails with 500.
	Recipients string
	// APIKey presence is checked here so a missing key surfaces as a
	// config error rather than a provider rejection.
	APIKey string
}

// NewNotifyHandler constructs a NotifyHandler.
func NewNotifyHandler(m *mailer.Client, recipients, apiKey string) *NotifyHandler {
	return &NotifyHandler{Mailer: m, Recipients: recipients, APIKey: apiKey}
}

// notifyRequest is the inbound body: the submitter's name plus the full
// booking payload to dump into the email text.
type notifyRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	BookingInfo json.RawMessage `json:"bookingInfo"`
}

const notifySubject = "New Booking Form Submission"

// Notify handles POST /notify.  Responses:
//
//	400 – missing or unparsable body
//	500 – recipient list or API key unset, or at least one send failed
//	      (the body still reports which recipients succeeded)
//	200 – every recipient was notified
func (h *NotifyHandler) Notify(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil || len(raw) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No request body received"})
	}
	var req notifyRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid JSON body"})
	}

	if h.Recipients == "" || h.APIKey == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "ADMIN_EMAIL or RESEND_API_KEY is not set in env variables.",
		})
	}
	recipients := mailer.SplitRecipients(h.Recipients)

	result := h.Mailer.Broadcast(c.Request().Context(), recipients, notifySubject, notifyText(req))
	for _, f := range result.Failures {
		log.Printf("notify: send to %s failed for booking by %q: %s", f.To, req.Name, f.Error)
	}

	if !result.OK() {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":  "Some emails failed",
			"errors": result.Failures,
			"sent":   result.Sent,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Emails sent!",
		"sent":    result.Sent,
	})
}

// notifyText builds the plain-text email body: submitter name plus a
// structured dump of the booking payload.
func notifyText(req notifyRequest) string {
	name := req.Name
	if name == "" {
		name = "N/A"
	}
	info := "N/A"
	if len(req.BookingInfo) > 0 {
		var v interface{}
		if err := json.Unmarshal(req.BookingInfo, &v); err == nil {
			if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
				info = string(pretty)
			}
		}
	}
	return "A new booking was submitted.\n\nName: " + name + "\nBooking Info: " + info + "\n"
}
