package router // defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/teacher-slot-booking/internal/config"
	"github.com/iliyamo/teacher-slot-booking/internal/handler"
	"github.com/iliyamo/teacher-slot-booking/internal/middleware"
)

// Register wires every route of the booking API onto the provided Echo
// instance.
//
// Anonymous endpoints carry the rate limiter, and the read-only ones
// additionally the response cache.  The admin group requires a bearer
// token issued by the login endpoint.  The notification endpoint is
// deliberately outside /v1: it can be deployed as a standalone webhook,
// and the submission flow reaches it over HTTP rather than in-process.
func Register(e *echo.Echo, b *handler.BookingHandler, s *handler.StatusHandler, a *handler.AdminHandler, n *handler.NotifyHandler, jwtSecret string, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	v1 := e.Group("/v1", limiter)
	// Booking submission and the read-side of the form.
	v1.POST("/bookings", b.Submit)
	v1.GET("/bookings", b.ListByDate, cache)
	v1.GET("/slots", b.Slots, cache)
	// Teacher status lookup.
	v1.GET("/status", s.Check)

	// Admin approval panel.
	v1.POST("/admin/login", a.Login)
	admin := v1.Group("/admin", middleware.AdminAuth(jwtSecret))
	admin.GET("/bookings", a.ListBookings)
	admin.PATCH("/bookings/:id/status", a.SetStatus)
	admin.GET("/report", a.ExportReport)

	// Notification fan-out, invoked out-of-band by the submission flow.
	e.POST("/notify", n.Notify)
}
