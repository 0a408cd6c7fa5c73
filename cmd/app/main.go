package main

import (
	"clinicbook/config"
	"clinicbook/di"
	"clinicbook/helper"
	"clinicbook/internal/domains/booking/repository"
	"clinicbook/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.Storage.Driver == repository.DriverSQLite && cfg.Storage.SQLite.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
