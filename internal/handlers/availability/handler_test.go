package availability_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"clinicbook/infras/otel/mocks"
	availabilityMocks "clinicbook/internal/domains/availability/mocks"
	"clinicbook/internal/domains/availability/model/dto"
	"clinicbook/internal/handlers/availability"
	"clinicbook/shared/failure"
)

func TestHandler_GetAvailableTimes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := availabilityMocks.NewMockAvailability(ctrl)
	handler := availability.New(mockService, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	tests := []struct {
		name       string
		target     string
		setupMock  func()
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name:   "returns availability payload",
			target: "/available-times?date=2026-09-01",
			setupMock: func() {
				mockService.EXPECT().
					AvailableTimes(gomock.Any(), "2026-09-01").
					Return(dto.AvailableTimesResponse{
						Date:           "2026-09-01",
						AvailableTimes: []string{"08:00", "09:00"},
						BookedTimes:    []string{"10:00"},
					}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res dto.AvailableTimesResponse
				require.NoError(t, json.Unmarshal(body, &res))

				assert.Equal(t, "2026-09-01", res.Date)
				assert.Equal(t, []string{"08:00", "09:00"}, res.AvailableTimes)
				assert.Equal(t, []string{"10:00"}, res.BookedTimes)
			},
		},
		{
			name:   "missing date",
			target: "/available-times",
			setupMock: func() {
				mockService.EXPECT().
					AvailableTimes(gomock.Any(), "").
					Return(dto.AvailableTimesResponse{}, failure.MissingDateParam)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "malformed date",
			target: "/available-times?date=not-a-date",
			setupMock: func() {
				mockService.EXPECT().
					AvailableTimes(gomock.Any(), "not-a-date").
					Return(dto.AvailableTimesResponse{}, failure.InvalidDateParam)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			request := httptest.NewRequest(http.MethodGet, tt.target, nil)
			recorder := httptest.NewRecorder()

			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.check != nil {
				tt.check(t, recorder.Body.Bytes())
			}
		})
	}
}
