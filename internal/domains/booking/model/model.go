package model

import "time"

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldService   = "service"
	FieldSlotDate  = "slot_date"
	FieldSlotTime  = "slot_time"
	FieldNotes     = "notes"
	FieldPrice     = "price"
	FieldStatus    = "status"
	FieldCreatedAt = "created_at"
)

const (
	// StatusConfirmed is the only status the booking flow assigns; there is
	// no state machine beyond the default value.
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking is one reserved slot on one date by one client. The json tags
// double as the flat-file document format, so they must stay stable.
type Booking struct {
	ID        string    `db:"id"         json:"id"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  string    `db:"last_name"  json:"lastName"`
	Email     string    `db:"email"      json:"email"`
	Phone     string    `db:"phone"      json:"phone"`
	Service   string    `db:"service"    json:"service"`
	SlotDate  string    `db:"slot_date"  json:"date"`
	SlotTime  string    `db:"slot_time"  json:"time"`
	Notes     string    `db:"notes"      json:"notes,omitempty"`
	Price     string    `db:"price"      json:"price,omitempty"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Stats summarizes the stored bookings for the admin surface.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
	Upcoming int            `json:"upcoming"`
	Dates    int            `json:"dates"`
}
