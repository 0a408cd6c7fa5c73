package dto

import (
	"time"

	"clinicbook/internal/domains/booking/model"
	gDto "clinicbook/shared/dto"
	"clinicbook/shared/timezone"

	"github.com/google/uuid"
)

// CreateBookingRequest carries the public booking form. The time enumeration
// mirrors the clinic's fixed hourly slots.
type CreateBookingRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Email     string `json:"email"     validate:"required,email,max=100"`
	Phone     string `json:"phone"     validate:"required,max=30"`
	Service   string `json:"service"   validate:"required,max=200"`
	Date      string `json:"date"      validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"      validate:"required,oneof=08:00 09:00 10:00 11:00 12:00 13:00 14:00 15:00 16:00 17:00 18:00"`
	Notes     string `json:"notes"     validate:"omitempty,max=1000"`
	Price     string `json:"price"     validate:"omitempty,max=50"`
}

func (c *CreateBookingRequest) ToModel() model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Service:   c.Service,
		SlotDate:  c.Date,
		SlotTime:  c.Time,
		Notes:     c.Notes,
		Price:     c.Price,
		Status:    model.StatusConfirmed,
		CreatedAt: timezone.Now(),
	}
}

// BookingSummary is the trimmed confirmation view returned after creation.
type BookingSummary struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
}

type BookingConfirmation struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Booking BookingSummary `json:"booking"`
}

type BookingResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Notes     string `json:"notes,omitempty"`
	Price     string `json:"price,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

func (r *BookingResponse) FromModel(mod model.Booking) {
	r.ID = mod.ID
	r.FirstName = mod.FirstName
	r.LastName = mod.LastName
	r.Email = mod.Email
	r.Phone = mod.Phone
	r.Service = mod.Service
	r.Date = mod.SlotDate
	r.Time = mod.SlotTime
	r.Notes = mod.Notes
	r.Price = mod.Price
	r.Status = mod.Status
	r.CreatedAt = timezone.Format(mod.CreatedAt, time.RFC3339)
}

func BookingResponses(models []model.Booking) []BookingResponse {
	responses := make([]BookingResponse, len(models))
	for i, mod := range models {
		responses[i].FromModel(mod)
	}

	return responses
}

// SearchBookingsRequest is the admin filter set: free text over client
// name/email plus exact date and status matches.
type SearchBookingsRequest struct {
	Text   string `json:"q"      validate:"omitempty,max=100"`
	Date   string `json:"date"   validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=confirmed cancelled"`
	Params gDto.QueryParams
}

type SearchBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"totalData"`
	TotalPage int               `json:"totalPage"`
}

type DeleteBookingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
