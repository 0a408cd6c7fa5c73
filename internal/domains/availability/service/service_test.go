package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/infras/otel/mocks"
	"clinicbook/internal/domains/availability/service"
	bookingMocks "clinicbook/internal/domains/booking/mocks"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/shared/failure"
)

func TestAvailabilityService_AvailableTimes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockOtel)

	allSlots := []string{
		"08:00", "09:00", "10:00", "11:00",
		"12:00", "13:00", "14:00", "15:00",
		"16:00", "17:00", "18:00",
	}

	tests := []struct {
		name          string
		date          string
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable []string
		wantBooked    []string
	}{
		{
			name: "empty day returns all slots in order",
			date: "2026-09-01",
			setupMock: func() {
				mockRepo.EXPECT().
					ListByDate(gomock.Any(), "2026-09-01").
					Return([]model.Booking{}, nil)
			},
			wantAvailable: allSlots,
			wantBooked:    []string{},
		},
		{
			name: "booked slots are excluded",
			date: "2026-09-02",
			setupMock: func() {
				bookings := []model.Booking{
					{ID: "b-1", SlotDate: "2026-09-02", SlotTime: "10:00"},
					{ID: "b-2", SlotDate: "2026-09-02", SlotTime: "15:00"},
				}

				mockRepo.EXPECT().
					ListByDate(gomock.Any(), "2026-09-02").
					Return(bookings, nil)
			},
			wantAvailable: []string{
				"08:00", "09:00", "11:00", "12:00",
				"13:00", "14:00", "16:00", "17:00", "18:00",
			},
			wantBooked: []string{"10:00", "15:00"},
		},
		{
			name:      "missing date",
			date:      "",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			date:      "01-09-2026",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			date: "2026-09-03",
			setupMock: func() {
				mockRepo.EXPECT().
					ListByDate(gomock.Any(), "2026-09-03").
					Return(nil, errors.New("database error"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.AvailableTimes(context.Background(), tt.date)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.date, res.Date)
			assert.Equal(t, tt.wantAvailable, res.AvailableTimes)
			assert.Equal(t, tt.wantBooked, res.BookedTimes)
		})
	}
}

func TestSlots(t *testing.T) {
	slots := service.Slots()

	assert.Len(t, slots, 11)
	assert.Equal(t, "08:00", slots[0])
	assert.Equal(t, "18:00", slots[len(slots)-1])
}
