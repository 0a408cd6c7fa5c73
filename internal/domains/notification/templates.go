package notification

import "html/template"

// Template fields are escaped by html/template, so client-supplied booking
// values cannot inject markup into the messages.

var clinicTemplate = template.Must(template.New("clinic").Parse(`<h2>New booking received</h2>
<p>A new appointment was booked through the website.</p>
<table>
  <tr><td><strong>Booking ID</strong></td><td>{{.Booking.ID}}</td></tr>
  <tr><td><strong>Client</strong></td><td>{{.Booking.FirstName}} {{.Booking.LastName}}</td></tr>
  <tr><td><strong>Email</strong></td><td>{{.Booking.Email}}</td></tr>
  <tr><td><strong>Phone</strong></td><td>{{.Booking.Phone}}</td></tr>
  <tr><td><strong>Service</strong></td><td>{{.Booking.Service}}</td></tr>
  <tr><td><strong>Date</strong></td><td>{{.Booking.SlotDate}}</td></tr>
  <tr><td><strong>Time</strong></td><td>{{.Booking.SlotTime}}</td></tr>
  {{if .Booking.Price}}<tr><td><strong>Price</strong></td><td>{{.Booking.Price}}</td></tr>{{end}}
  {{if .Booking.Notes}}<tr><td><strong>Notes</strong></td><td>{{.Booking.Notes}}</td></tr>{{end}}
</table>`))

var clientTemplate = template.Must(template.New("client").Parse(`<h2>Your appointment is confirmed</h2>
<p>Dear {{.Booking.FirstName}} {{.Booking.LastName}},</p>
<p>Thank you for booking with {{.ClinicName}}. Your appointment details:</p>
<table>
  <tr><td><strong>Booking ID</strong></td><td>{{.Booking.ID}}</td></tr>
  <tr><td><strong>Service</strong></td><td>{{.Booking.Service}}</td></tr>
  <tr><td><strong>Date</strong></td><td>{{.Booking.SlotDate}}</td></tr>
  <tr><td><strong>Time</strong></td><td>{{.Booking.SlotTime}}</td></tr>
  {{if .Booking.Price}}<tr><td><strong>Price</strong></td><td>{{.Booking.Price}}</td></tr>{{end}}
</table>
<p>You can find us at {{.ClinicAddress}}.<br>
Questions? Call {{.ClinicPhone}} or reply to {{.ClinicEmail}}.</p>
<p>Please keep your booking ID in case you need to change the appointment.</p>`))
