package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/internal/domains/booking/repository"
	"clinicbook/internal/domains/notification"
	"clinicbook/shared"
	"clinicbook/shared/constant"
	"clinicbook/shared/failure"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingConfirmation, error)
	GetAll(ctx context.Context) ([]dto.BookingResponse, error)
	Search(ctx context.Context, req dto.SearchBookingsRequest) (dto.SearchBookingsResponse, error)
	Stats(ctx context.Context) (model.Stats, error)
	Delete(ctx context.Context, id string) (dto.DeleteBookingResponse, error)
}

type serviceImpl struct {
	repo       repository.Booking
	dispatcher notification.Dispatcher
	otel       otel.Otel
}

func New(repo repository.Booking, dispatcher notification.Dispatcher, otl otel.Otel) Booking {
	return &serviceImpl{
		repo:       repo,
		dispatcher: dispatcher,
		otel:       otl,
	}
}

// Create persists a booking and queues its notifications. The availability
// pre-check gives a clean 409 in the common case; the insert itself is what
// actually guarantees the (date, time) invariant, so a conflict raced past
// the pre-check still maps to 409.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingConfirmation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.repo.Exists(ctx, req.Date, req.Time)
	if err != nil {
		log.Error().Err(err).Msg("failed to check slot availability")

		return res, fmt.Errorf("failed to check slot availability: %w", err)
	}

	if taken {
		return res, failure.SlotTaken // nolint:wrapcheck
	}

	booking := req.ToModel()

	if err = s.repo.Insert(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return res, failure.SlotTaken // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.dispatcher.Enqueue(booking)

	res = dto.BookingConfirmation{
		Success: true,
		Message: "Booking confirmed successfully",
		Booking: dto.BookingSummary{
			ID:      booking.ID,
			Date:    booking.SlotDate,
			Time:    booking.SlotTime,
			Service: booking.Service,
		},
	}

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.BookingResponses(bookings), nil
}

func (s *serviceImpl) Search(ctx context.Context, req dto.SearchBookingsRequest) (res dto.SearchBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, total, err := s.repo.Search(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("failed to search bookings")

		return res, fmt.Errorf("failed to search bookings: %w", err)
	}

	res.Bookings = dto.BookingResponses(bookings)
	res.TotalData = total
	res.TotalPage = shared.CalculateTotalPage(total, req.Params.Limit)

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context) (res model.Stats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = s.repo.Stats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking stats")

		return res, fmt.Errorf("failed to get booking stats: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (res dto.DeleteBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return res, fmt.Errorf("failed to delete booking: %w", err)
	}

	if !deleted {
		return res, failure.NotFound("Booking not found") // nolint:wrapcheck
	}

	res = dto.DeleteBookingResponse{
		Success: true,
		Message: "Booking deleted successfully",
	}

	return res, nil
}
