package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"

	"clinicbook/config"
	"clinicbook/infras/otel"
	"clinicbook/infras/sqlite"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/booking/model/dto"

	"github.com/rs/zerolog/log"
)

// ErrSlotTaken reports a violated (date, time) uniqueness invariant. Both
// backends enforce the invariant atomically at insert time, so callers may
// rely on it even when two requests race past the availability pre-check.
var ErrSlotTaken = errors.New("slot already booked")

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// Booking is the persistence adapter shared by both storage backends.
type Booking interface {
	List(ctx context.Context) ([]model.Booking, error)
	ListByDate(ctx context.Context, date string) ([]model.Booking, error)
	Exists(ctx context.Context, date, timeLabel string) (bool, error)
	Insert(ctx context.Context, booking model.Booking) error
	Delete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, req dto.SearchBookingsRequest) ([]model.Booking, int, error)
	Stats(ctx context.Context) (model.Stats, error)
}

// New selects the backend from STORAGE_DRIVER.
func New(cfg *config.Config, otl otel.Otel) Booking {
	switch cfg.Storage.Driver {
	case DriverFile:
		log.Info().Str("path", cfg.Storage.File.Path).Msg("Using flat-file bookings backend")

		return NewFile(cfg.Storage.File.Path, otl)
	case DriverSQLite:
		return NewSQLite(sqlite.New(cfg), otl)
	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Unknown storage driver")

		return nil
	}
}
