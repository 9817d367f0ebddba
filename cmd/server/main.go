package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/teacher-slot-booking/internal/config"
	"github.com/iliyamo/teacher-slot-booking/internal/database"
	"github.com/iliyamo/teacher-slot-booking/internal/handler"
	"github.com/iliyamo/teacher-slot-booking/internal/mailer"
	"github.com/iliyamo/teacher-slot-booking/internal/queue"
	"github.com/iliyamo/teacher-slot-booking/internal/repository"
	"github.com/iliyamo/teacher-slot-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables cache and rate limiting
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	bookings := repository.NewBookingRepo(db)
	mail := mailer.New(cfg.ResendAPIKey, cfg.MailAPIURL, cfg.MailFrom)

	bookingHandler := handler.NewBookingHandler(bookings, cfg.NotifyURL)
	statusHandler := handler.NewStatusHandler(bookings)
	adminHandler := handler.NewAdminHandler(bookings, cfg.AdminPassword, cfg.JWTSecret, cfg.AccessTTLMin)
	notifyHandler := handler.NewNotifyHandler(mail, cfg.AdminEmails, cfg.ResendAPIKey)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, bookingHandler, statusHandler, adminHandler, notifyHandler, cfg.JWTSecret, rdb)

	// Audit consumer runs for the lifetime of the process and reconnects
	// on its own.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
