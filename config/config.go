package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
	} `envconfig:"APP"`

	Clinic struct {
		Name    string `envconfig:"NAME"`
		Address string `envconfig:"ADDRESS"`
		Phone   string `envconfig:"PHONE"`
		Email   string `envconfig:"EMAIL"`
	} `envconfig:"CLINIC"`

	Storage struct {
		// Driver selects the bookings backend: "sqlite" or "file".
		Driver string `envconfig:"DRIVER" default:"sqlite"`
		SQLite struct {
			Path               string `envconfig:"PATH" default:"data/clinic.db"`
			MigrationTable     string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate        bool   `envconfig:"AUTO_MIGRATE"`
			BusyTimeoutMillis  int    `envconfig:"BUSY_TIMEOUT_MILLIS" default:"5000"`
			MaxOpenConnections int    `envconfig:"MAX_OPEN_CONNECTIONS" default:"1"`
		} `envconfig:"SQLITE"`
		File struct {
			Path string `envconfig:"PATH" default:"data/bookings.json"`
		} `envconfig:"FILE"`
	} `envconfig:"STORAGE"`

	Mail struct {
		Enable          bool   `envconfig:"ENABLE"`
		Host            string `envconfig:"HOST"`
		Port            string `envconfig:"PORT" default:"587"`
		Username        string `envconfig:"USERNAME"`
		Password        string `envconfig:"PASSWORD"`
		From            string `envconfig:"FROM"`
		ClinicRecipient string `envconfig:"CLINIC_RECIPIENT"`
		QueueSize       int    `envconfig:"QUEUE_SIZE" default:"64"`
	} `envconfig:"MAIL"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

// ClinicRecipient returns the mailbox that receives new-booking alerts,
// falling back to the clinic's public address when no override is set.
func (c *Config) ClinicRecipient() string {
	if c.Mail.ClinicRecipient != "" {
		return c.Mail.ClinicRecipient
	}

	return c.Clinic.Email
}
