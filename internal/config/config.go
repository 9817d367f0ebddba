package config // loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Mail and notification settings are
// optional at startup on purpose: a missing recipient list or API key
// is a per-request 500 in the notification handler, not a boot failure.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign admin tokens
	AccessTTLMin int    // admin token time-to-live in minutes

	// AdminPassword gates the approval panel by plain string equality.
	// A placeholder, not real authentication.
	AdminPassword string

	AdminEmails  string // comma-separated notification recipients (optional)
	ResendAPIKey string // email provider API key (optional)
	MailAPIURL   string // provider endpoint override, empty = provider default
	MailFrom     string // sender override, empty = provider default
	NotifyURL    string // where the submission flow POSTs notifications
}

// Load reads configuration values from environment variables and
// returns a Config.  Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		AccessTTLMin:  mustInt("ACCESS_TOKEN_TTL_MIN"),
		AdminPassword: must("ADMIN_PASSWORD"),
		AdminEmails:   os.Getenv("ADMIN_EMAIL"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		MailAPIURL:    os.Getenv("MAIL_API_URL"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		NotifyURL:     os.Getenv("NOTIFY_URL"),
	}
	if cfg.NotifyURL == "" {
		// Default to this service's own notification endpoint.
		cfg.NotifyURL = "http://localhost:" + cfg.Port + "/notify"
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and
// exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an
// integer.  If conversion fails, the application logs a fatal error and
// exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
