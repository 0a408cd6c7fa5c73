package booking

import (
	"net/http"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/internal/domains/booking/service"
	"clinicbook/shared/constant"
	"clinicbook/shared/validator"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/search", handler.SearchBookings)
		routerGroup.Get("/stats", handler.GetBookingStats)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking books one appointment slot.
// @Summary Create a new booking
// @Description Book a clinic appointment for one of the fixed daily slots.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.BookingConfirmation "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Slot already booked"
// @Failure 500 {object} response.Error
// @Router /api/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created for slot " + req.Date + " " + req.Time)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves every booking.
// @Summary Get all bookings
// @Description Retrieve all bookings, newest first.
// @Tags Booking
// @Produce json
// @Success 200 {array} dto.BookingResponse "List of bookings"
// @Failure 500 {object} response.Error
// @Router /api/bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	bookings, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// SearchBookings retrieves bookings matching the given filters.
// @Summary Search bookings
// @Description Filter bookings by client text, date and status, with pagination.
// @Tags Booking
// @Produce json
// @Param q query string false "Text matched against client name and email"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (confirmed, cancelled)"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.SearchBookingsResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/search [get]
func (handler *Handler) SearchBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchBookings")
	defer scope.End()

	query := request.URL.Query()

	req := dto.SearchBookingsRequest{
		Text:   query.Get(constant.RequestParamQuery),
		Date:   query.Get(constant.RequestParamDate),
		Status: query.Get(constant.RequestParamStatus),
	}
	req.Params.FromRequest(request, true)

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate search parameters")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetBookingStats retrieves aggregate booking counters.
// @Summary Get booking statistics
// @Description Retrieve booking totals by status, upcoming count and distinct dates.
// @Tags Booking
// @Produce json
// @Success 200 {object} model.Stats
// @Failure 500 {object} response.Error
// @Router /api/bookings/stats [get]
func (handler *Handler) GetBookingStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingStats")
	defer scope.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, stats)
}

// DeleteBooking removes a booking and frees its slot.
// @Summary Delete a booking
// @Description Delete the booking with the given ID.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.DeleteBookingResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id} [delete]
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + id + " deleted")

	response.WithJSON(writer, http.StatusOK, res)
}
