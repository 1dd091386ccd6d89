// Package config reads the server settings from the environment, after
// loading a .env file when one is present.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"go-retrofit/storage"
	"go-retrofit/utils"
)

// Config holds everything main needs to assemble the server.
type Config struct {
	Port string

	StorageBackend string
	DataDir        string
	MongoURI       string
	MongoDatabase  string
	DatabaseURL    string

	JWTSecret         string
	AdminPassword     string
	AdminPasswordHash string

	MailProvider     string
	PostmarkAPIToken string
	SendGridAPIKey   string
	EmailSender      string
	NotifyEmail      string

	UploadDir          string
	OrderRatePerMinute int
	CORSOrigin         string
	CookieSecure       bool
	EnableTracing      bool
	LogLevel           string
}

// Load reads a .env file if there is one and then the environment.
func Load(log logrus.FieldLogger, files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Info("No .env file found. Proceeding with environment variables.")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:              envOr("PORT", "8000"),
		StorageBackend:    envOr("STORAGE_BACKEND", "file"),
		DataDir:           envOr("DATA_DIR", "data"),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDatabase:     envOr("MONGO_DATABASE", "retrofit"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		MailProvider:      envOr("MAIL_PROVIDER", "none"),
		PostmarkAPIToken:  os.Getenv("POSTMARK_API_TOKEN"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		EmailSender:       os.Getenv("EMAIL_SENDER"),
		NotifyEmail:       os.Getenv("NOTIFY_EMAIL"),
		UploadDir:         envOr("UPLOAD_DIR", "uploads"),
		CORSOrigin:        os.Getenv("CORS_ORIGIN"),
		LogLevel:          envOr("LOG_LEVEL", "info"),
	}

	rate, err := strconv.Atoi(envOr("ORDER_RATE_PER_MINUTE", "10"))
	if err != nil || rate < 0 {
		return nil, errors.Errorf("ORDER_RATE_PER_MINUTE must be a non-negative integer, got %q", os.Getenv("ORDER_RATE_PER_MINUTE"))
	}
	cfg.OrderRatePerMinute = rate

	cfg.EnableTracing, err = parseBool(os.Getenv("ENABLE_TRACING"))
	if err != nil {
		return nil, errors.Wrap(err, "ENABLE_TRACING")
	}
	cfg.CookieSecure, err = parseBool(os.Getenv("COOKIE_SECURE"))
	if err != nil {
		return nil, errors.Wrap(err, "COOKIE_SECURE")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

// StorageOptions selects the blob store backend.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:       c.StorageBackend,
		DataDir:       c.DataDir,
		MongoURI:      c.MongoURI,
		MongoDatabase: c.MongoDatabase,
		PostgresURL:   c.DatabaseURL,
	}
}

// Mail selects the notification provider.
func (c *Config) Mail() utils.MailConfig {
	return utils.MailConfig{
		Provider:      c.MailProvider,
		PostmarkToken: c.PostmarkAPIToken,
		SendGridKey:   c.SendGridAPIKey,
		Sender:        c.EmailSender,
	}
}

// PasswordHash returns the bcrypt hash admin logins are checked against.
// A plain ADMIN_PASSWORD is hashed here so it is never compared directly.
func (c *Config) PasswordHash() (string, error) {
	if c.AdminPasswordHash != "" {
		return c.AdminPasswordHash, nil
	}
	if c.AdminPassword == "" {
		return "", errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	hash, err := utils.HashPassword(c.AdminPassword)
	return hash, errors.Wrap(err, "hash admin password")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
