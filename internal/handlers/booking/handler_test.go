package booking_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"clinicbook/infras/otel/mocks"
	bookingMocks "clinicbook/internal/domains/booking/mocks"
	"clinicbook/internal/domains/booking/model/dto"
	"clinicbook/internal/handlers/booking"
	"clinicbook/shared/failure"
)

func newRouter(t *testing.T) (*bookingMocks.MockBookingService, chi.Router) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := bookingMocks.NewMockBookingService(ctrl)
	handler := booking.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return mockService, router
}

const validBody = `{
	"firstName": "Anna",
	"lastName": "Petrova",
	"email": "anna@example.com",
	"phone": "+49151000001",
	"service": "Consultation",
	"date": "2026-09-01",
	"time": "10:00"
}`

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(mockService *bookingMocks.MockBookingService)
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "created",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingConfirmation{
						Success: true,
						Message: "Booking confirmed successfully",
						Booking: dto.BookingSummary{
							ID:      "b-1",
							Date:    "2026-09-01",
							Time:    "10:00",
							Service: "Consultation",
						},
					}, nil)
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, body []byte) {
				var res dto.BookingConfirmation
				require.NoError(t, json.Unmarshal(body, &res))

				assert.True(t, res.Success)
				assert.Equal(t, "b-1", res.Booking.ID)
				assert.Equal(t, "2026-09-01", res.Booking.Date)
				assert.Equal(t, "10:00", res.Booking.Time)
			},
		},
		{
			name:       "missing required fields",
			body:       `{"firstName": "Anna"}`,
			setupMock:  func(mockService *bookingMocks.MockBookingService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "time outside slot grid",
			body:       strings.Replace(validBody, "10:00", "10:30", 1),
			setupMock:  func(mockService *bookingMocks.MockBookingService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed JSON",
			body:       `{"firstName":`,
			setupMock:  func(mockService *bookingMocks.MockBookingService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "slot conflict",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingConfirmation{}, failure.SlotTaken)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "persistence failure",
			body: validBody,
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(dto.BookingConfirmation{}, errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)
			tt.setupMock(mockService)

			request := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.check != nil {
				tt.check(t, recorder.Body.Bytes())
			}
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	mockService, router := newRouter(t)

	mockService.EXPECT().
		GetAll(gomock.Any()).
		Return([]dto.BookingResponse{
			{ID: "b-2", FirstName: "Boris"},
			{ID: "b-1", FirstName: "Anna"},
		}, nil)

	request := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	// The listing is a bare JSON array, not an envelope.
	var res []dto.BookingResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.Len(t, res, 2)
	assert.Equal(t, "b-2", res[0].ID)
}

func TestHandler_SearchBookings(t *testing.T) {
	mockService, router := newRouter(t)

	mockService.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.SearchBookingsRequest) (dto.SearchBookingsResponse, error) {
			assert.Equal(t, "anna", req.Text)
			assert.Equal(t, "2026-09-01", req.Date)
			assert.Equal(t, 1, req.Params.Page)
			assert.Equal(t, 20, req.Params.Limit)

			return dto.SearchBookingsResponse{
				Bookings:  []dto.BookingResponse{{ID: "b-1"}},
				TotalData: 1,
				TotalPage: 1,
			}, nil
		})

	request := httptest.NewRequest(http.MethodGet, "/bookings/search?q=anna&date=2026-09-01", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_SearchBookings_InvalidStatus(t *testing.T) {
	_, router := newRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/bookings/search?status=bogus", nil)
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_DeleteBooking(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		setupMock  func(mockService *bookingMocks.MockBookingService)
		wantStatus int
	}{
		{
			name: "deleted",
			id:   "b-1",
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Delete(gomock.Any(), "b-1").
					Return(dto.DeleteBookingResponse{Success: true, Message: "Booking deleted successfully"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			id:   "missing",
			setupMock: func(mockService *bookingMocks.MockBookingService) {
				mockService.EXPECT().
					Delete(gomock.Any(), "missing").
					Return(dto.DeleteBookingResponse{}, failure.NotFound("Booking not found"))
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService, router := newRouter(t)
			tt.setupMock(mockService)

			request := httptest.NewRequest(http.MethodDelete, "/bookings/"+tt.id, nil)
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
