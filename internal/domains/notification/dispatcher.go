package notification

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"clinicbook/config"
	"clinicbook/infras/smtp"
	"clinicbook/internal/domains/booking/model"

	"github.com/rs/zerolog/log"
)

const defaultQueueSize = 64

// Dispatcher accepts bookings for asynchronous email notification. Enqueue
// never blocks the caller and delivery is best-effort: failures are logged,
// never reported back to the booking transaction.
type Dispatcher interface {
	Enqueue(booking model.Booking)
	Close()
}

type mailData struct {
	Booking       model.Booking
	ClinicName    string
	ClinicAddress string
	ClinicPhone   string
	ClinicEmail   string
}

type dispatcherImpl struct {
	cfg    *config.Config
	mailer smtp.Mailer
	queue  chan model.Booking

	closeOnce sync.Once
	done      chan struct{}
}

// New starts the single dispatch worker.
func New(cfg *config.Config, mailer smtp.Mailer) Dispatcher {
	size := cfg.Mail.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	d := &dispatcherImpl{
		cfg:    cfg,
		mailer: mailer,
		queue:  make(chan model.Booking, size),
		done:   make(chan struct{}),
	}

	go d.run()

	return d
}

func (d *dispatcherImpl) Enqueue(booking model.Booking) {
	select {
	case d.queue <- booking:
	default:
		// A full queue must not stall the request path.
		log.Warn().
			Str("bookingID", booking.ID).
			Msg("Notification queue full, dropping booking notifications")
	}
}

// Close stops accepting bookings and waits for queued notifications to drain.
func (d *dispatcherImpl) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
		<-d.done
	})
}

func (d *dispatcherImpl) run() {
	defer close(d.done)

	for booking := range d.queue {
		d.dispatch(booking)
	}
}

// dispatch sends the clinic-facing and client-facing messages for one
// booking. The two sends are independent: one failing does not stop the
// other.
func (d *dispatcherImpl) dispatch(booking model.Booking) {
	data := mailData{
		Booking:       booking,
		ClinicName:    d.cfg.Clinic.Name,
		ClinicAddress: d.cfg.Clinic.Address,
		ClinicPhone:   d.cfg.Clinic.Phone,
		ClinicEmail:   d.cfg.Clinic.Email,
	}

	clinicSubject := fmt.Sprintf("New booking: %s %s on %s at %s", booking.FirstName, booking.LastName, booking.SlotDate, booking.SlotTime)
	if err := d.send(d.cfg.ClinicRecipient(), clinicSubject, clinicTemplate, data); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to send clinic notification")
	}

	clientSubject := fmt.Sprintf("Appointment confirmed: %s at %s", booking.SlotDate, booking.SlotTime)
	if err := d.send(booking.Email, clientSubject, clientTemplate, data); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to send client confirmation")
	}
}

func (d *dispatcherImpl) send(to, subject string, tmpl *template.Template, data mailData) error {
	var body bytes.Buffer

	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification body: %w", err)
	}

	if err := d.mailer.Send(to, subject, body.String()); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	return nil
}
