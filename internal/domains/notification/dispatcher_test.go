package notification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"clinicbook/config"
	"clinicbook/infras/smtp/mocks"
	"clinicbook/internal/domains/booking/model"
	"clinicbook/internal/domains/notification"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Clinic.Name = "Test Clinic"
	cfg.Clinic.Address = "1 Main St"
	cfg.Clinic.Phone = "+49 30 000000"
	cfg.Clinic.Email = "reception@clinic.test"
	cfg.Mail.QueueSize = 4

	return cfg
}

func testBooking() model.Booking {
	return model.Booking{
		ID:        "b-1",
		FirstName: "Anna",
		LastName:  "Petrova",
		Email:     "anna@example.com",
		Phone:     "+49151000001",
		Service:   "Consultation",
		SlotDate:  "2026-09-01",
		SlotTime:  "10:00",
		Status:    model.StatusConfirmed,
	}
}

func TestDispatcher_SendsClinicAndClientMail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mocks.NewMockMailer(ctrl)

	var clinicBody, clientBody string

	mockMailer.EXPECT().
		Send("reception@clinic.test", "New booking: Anna Petrova on 2026-09-01 at 10:00", gomock.Any()).
		DoAndReturn(func(_, _, body string) error {
			clinicBody = body

			return nil
		})
	mockMailer.EXPECT().
		Send("anna@example.com", "Appointment confirmed: 2026-09-01 at 10:00", gomock.Any()).
		DoAndReturn(func(_, _, body string) error {
			clientBody = body

			return nil
		})

	d := notification.New(testConfig(), mockMailer)
	d.Enqueue(testBooking())
	d.Close()

	assert.Contains(t, clinicBody, "Anna")
	assert.Contains(t, clinicBody, "Consultation")
	assert.Contains(t, clientBody, "Test Clinic")
	assert.Contains(t, clientBody, "10:00")
}

func TestDispatcher_ClinicRecipientOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := testConfig()
	cfg.Mail.ClinicRecipient = "bookings@clinic.test"

	mockMailer := mocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().
		Send("bookings@clinic.test", gomock.Any(), gomock.Any()).
		Return(nil)
	mockMailer.EXPECT().
		Send("anna@example.com", gomock.Any(), gomock.Any()).
		Return(nil)

	d := notification.New(cfg, mockMailer)
	d.Enqueue(testBooking())
	d.Close()
}

func TestDispatcher_ClinicFailureDoesNotStopClientMail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockMailer := mocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().
		Send("reception@clinic.test", gomock.Any(), gomock.Any()).
		Return(assert.AnError)
	mockMailer.EXPECT().
		Send("anna@example.com", gomock.Any(), gomock.Any()).
		Return(nil)

	d := notification.New(testConfig(), mockMailer)
	d.Enqueue(testBooking())
	d.Close()
}

func TestDispatcher_EscapesTemplateInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	booking := testBooking()
	booking.Notes = `<script>alert("x")</script>`

	var clinicBody string

	mockMailer := mocks.NewMockMailer(ctrl)
	mockMailer.EXPECT().
		Send("reception@clinic.test", gomock.Any(), gomock.Any()).
		DoAndReturn(func(_, _, body string) error {
			clinicBody = body

			return nil
		})
	mockMailer.EXPECT().
		Send("anna@example.com", gomock.Any(), gomock.Any()).
		Return(nil)

	d := notification.New(testConfig(), mockMailer)
	d.Enqueue(booking)
	d.Close()

	assert.NotContains(t, clinicBody, "<script>")
}
