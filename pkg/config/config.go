package config

import (
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	StoreMemory     = "memory"
	StorePersistent = "persistent"

	defaultJWTSecret = "supersecretjwtkey"
)

type Config struct {
	Port                    string
	Env                     string
	Debug                   bool
	AppName                 string
	StoreDriver             string
	SeedFile                string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	FirebaseCredentialsPath string
	RollbarToken            string
	SendgridAPIKey          string
	MailFrom                mail.Address
	NotifyEmail             bool
	FanOutConcurrency       int
	RequestTimeout          time.Duration
}

// Load reads configuration from the environment, after loading .env when
// one exists.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "config: load .env")
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "Project Showcase")
	v.SetDefault("STORE_DRIVER", StorePersistent)
	v.SetDefault("SEED_FILE", "")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "showcase")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM", "noreply@localhost")
	v.SetDefault("NOTIFY_EMAIL", false)
	v.SetDefault("FANOUT_CONCURRENCY", 8)
	v.SetDefault("REQUEST_TIMEOUT", 15*time.Second)
	v.AutomaticEnv()

	cfg := &Config{
		Port:                    v.GetString("PORT"),
		Env:                     strings.ToLower(v.GetString("ENV")),
		AppName:                 v.GetString("APP_NAME"),
		StoreDriver:             strings.ToLower(v.GetString("STORE_DRIVER")),
		SeedFile:                v.GetString("SEED_FILE"),
		PostgresConnStr:         v.GetString("POSTGRES_CONN_STR"),
		MongoURI:                v.GetString("MONGO_URI"),
		MongoDatabase:           v.GetString("MONGO_DATABASE"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		FirebaseCredentialsPath: v.GetString("FIREBASE_CREDENTIALS_PATH"),
		RollbarToken:            v.GetString("ROLLBAR_TOKEN"),
		SendgridAPIKey:          v.GetString("SENDGRID_API_KEY"),
		NotifyEmail:             v.GetBool("NOTIFY_EMAIL"),
		FanOutConcurrency:       v.GetInt("FANOUT_CONCURRENCY"),
		RequestTimeout:          v.GetDuration("REQUEST_TIMEOUT"),
	}
	cfg.Debug = cfg.Env == "development"

	from, err := mail.ParseAddress(v.GetString("MAIL_FROM"))
	if err != nil {
		return nil, errors.Wrap(err, "config: MAIL_FROM")
	}
	cfg.MailFrom = *from

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMemory:
	case StorePersistent:
		if c.PostgresConnStr == "" {
			return errors.New("config: POSTGRES_CONN_STR environment variable not set")
		}
		if c.MongoURI == "" {
			return errors.New("config: MONGO_URI environment variable not set")
		}
	default:
		return errors.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Env == "production" && c.JWTSecret == defaultJWTSecret {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	if c.FanOutConcurrency <= 0 {
		return errors.Errorf("config: FANOUT_CONCURRENCY must be positive, got %d", c.FanOutConcurrency)
	}
	if c.RequestTimeout <= 0 {
		return errors.Errorf("config: REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
