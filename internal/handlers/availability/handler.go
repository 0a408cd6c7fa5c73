package availability

import (
	"net/http"

	"clinicbook/infras/otel"
	"clinicbook/internal/domains/availability/service"
	"clinicbook/shared/constant"
	"clinicbook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/available-times", handler.GetAvailableTimes)
}

// GetAvailableTimes returns the free and booked slots for one date.
// @Summary Get available times
// @Description List the clinic's free and booked slot labels for the given date.
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.AvailableTimesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/available-times [get]
func (handler *Handler) GetAvailableTimes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableTimes")
	defer scope.End()

	date := request.URL.Query().Get(constant.RequestParamDate)

	res, err := handler.service.AvailableTimes(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("date", date).Msg("failed to get available times")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
