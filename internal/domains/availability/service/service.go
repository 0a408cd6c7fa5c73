package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/availability/model/dto"
	"clinicbook/internal/domains/booking/repository"
	"clinicbook/shared/constant"
	"clinicbook/shared/failure"

	"github.com/rs/zerolog/log"
)

// slotTimes is the clinic's fixed daily grid: eleven hourly start times.
// Every booking occupies exactly one nominal slot regardless of the service's
// advertised duration; a long treatment does not block adjacent slots.
var slotTimes = []string{
	"08:00", "09:00", "10:00", "11:00",
	"12:00", "13:00", "14:00", "15:00",
	"16:00", "17:00", "18:00",
}

// Slots returns the fixed slot grid in display order.
func Slots() []string {
	return append([]string(nil), slotTimes...)
}

type Availability interface {
	AvailableTimes(ctx context.Context, date string) (dto.AvailableTimesResponse, error)
}

type serviceImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otl otel.Otel) Availability {
	return &serviceImpl{
		repo: repo,
		otel: otl,
	}
}

func (s *serviceImpl) AvailableTimes(ctx context.Context, date string) (res dto.AvailableTimesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableTimes")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == "" {
		return res, failure.MissingDateParam
	}

	if _, err := time.Parse(constant.DateLayout, date); err != nil {
		return res, failure.InvalidDateParam
	}

	bookings, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("failed to load bookings for availability")

		return res, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}

	booked := make(map[string]bool, len(bookings))

	res.Date = date
	res.AvailableTimes = []string{}
	res.BookedTimes = []string{}

	for _, booking := range bookings {
		if !booked[booking.SlotTime] {
			booked[booking.SlotTime] = true
			res.BookedTimes = append(res.BookedTimes, booking.SlotTime)
		}
	}

	for _, slot := range slotTimes {
		if !booked[slot] {
			res.AvailableTimes = append(res.AvailableTimes, slot)
		}
	}

	return res, nil
}
