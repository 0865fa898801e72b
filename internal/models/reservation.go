package models

import (
	"errors"
	"time"
)

// ReservationStatus represents where a booking is in its lifecycle
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked-in"
	ReservationStatusCheckedOut ReservationStatus = "checked-out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// PaymentStatus represents the payment state of a reservation
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// BookingSource is the channel a reservation came in through
type BookingSource string

const (
	BookingSourceWebsite      BookingSource = "website"
	BookingSourcePhone        BookingSource = "phone"
	BookingSourceWalkIn       BookingSource = "walk-in"
	BookingSourceBookingAgent BookingSource = "booking-agent"
	BookingSourceEmail        BookingSource = "email"
)

// BookingSources lists every channel in report order
var BookingSources = []BookingSource{
	BookingSourceWebsite,
	BookingSourcePhone,
	BookingSourceWalkIn,
	BookingSourceBookingAgent,
	BookingSourceEmail,
}

// Reservation represents a guest's booking of a room for a date range.
// GuestName, RoomNumber and RoomType are resolved at read time and never
// stored, as are the CanCheckIn and CanCancel action flags.
type Reservation struct {
	ID              int64             `json:"id" db:"id"`
	GuestID         int64             `json:"guestId" db:"guest_id"`
	RoomID          int64             `json:"roomId" db:"room_id"`
	CheckInDate     Date              `json:"checkInDate" db:"check_in_date"`
	CheckOutDate    Date              `json:"checkOutDate" db:"check_out_date"`
	NumberOfGuests  int               `json:"numberOfGuests" db:"number_of_guests"`
	RoomRate        float64           `json:"roomRate" db:"room_rate"`
	TotalAmount     float64           `json:"totalAmount" db:"total_amount"`
	Status          ReservationStatus `json:"status" db:"status"`
	PaymentStatus   PaymentStatus     `json:"paymentStatus" db:"payment_status"`
	Source          BookingSource     `json:"source" db:"source"`
	SpecialRequests string            `json:"specialRequests" db:"special_requests"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`

	GuestName  string `json:"guestName" db:"-"`
	RoomNumber string `json:"roomNumber" db:"-"`
	RoomType   string `json:"roomType" db:"-"`
	CanCheckIn bool   `json:"canCheckIn" db:"-"`
	CanCancel  bool   `json:"canCancel" db:"-"`
}

// CreateReservationRequest represents the request to create a reservation
type CreateReservationRequest struct {
	GuestID         int64   `json:"guestId" binding:"required,gt=0"`
	RoomID          int64   `json:"roomId" binding:"required,gt=0"`
	CheckInDate     *Date   `json:"checkInDate" binding:"required"`
	CheckOutDate    *Date   `json:"checkOutDate" binding:"required"`
	NumberOfGuests  int     `json:"numberOfGuests" binding:"required,min=1"`
	RoomRate        float64 `json:"roomRate" binding:"gte=0"`
	TotalAmount     float64 `json:"totalAmount" binding:"gte=0"`
	Status          string  `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
	PaymentStatus   string  `json:"paymentStatus,omitempty" binding:"omitempty,oneof=pending paid overdue"`
	Source          string  `json:"source" binding:"required,oneof=website phone walk-in booking-agent email"`
	SpecialRequests string  `json:"specialRequests,omitempty" binding:"max=1000"`
}

// Validate checks the cross-field rules binding tags cannot express
func (r *CreateReservationRequest) Validate() error {
	if r.CheckInDate == nil || r.CheckOutDate == nil {
		return errors.New("checkInDate and checkOutDate are required")
	}
	if !r.CheckOutDate.After(*r.CheckInDate) {
		return errors.New("checkOutDate must be after checkInDate")
	}
	return nil
}

// Fields converts the request into a storable record. A zero total is
// derived from the nightly rate; status and payment default to pending.
func (r *CreateReservationRequest) Fields() Fields {
	status := r.Status
	if status == "" {
		status = string(ReservationStatusPending)
	}
	payment := r.PaymentStatus
	if payment == "" {
		payment = string(PaymentStatusPending)
	}
	total := r.TotalAmount
	if total == 0 && r.CheckInDate != nil && r.CheckOutDate != nil {
		total = r.RoomRate * float64(r.CheckInDate.Nights(*r.CheckOutDate))
	}
	f := Fields{
		"guestId":         r.GuestID,
		"roomId":          r.RoomID,
		"numberOfGuests":  r.NumberOfGuests,
		"roomRate":        r.RoomRate,
		"totalAmount":     total,
		"status":          status,
		"paymentStatus":   payment,
		"source":          r.Source,
		"specialRequests": r.SpecialRequests,
	}
	if r.CheckInDate != nil {
		f["checkInDate"] = *r.CheckInDate
	}
	if r.CheckOutDate != nil {
		f["checkOutDate"] = *r.CheckOutDate
	}
	return f
}

// UpdateReservationRequest represents a partial reservation update.
// Status set here bypasses the lifecycle guards.
type UpdateReservationRequest struct {
	GuestID         *int64   `json:"guestId,omitempty" binding:"omitempty,gt=0"`
	RoomID          *int64   `json:"roomId,omitempty" binding:"omitempty,gt=0"`
	CheckInDate     *Date    `json:"checkInDate,omitempty"`
	CheckOutDate    *Date    `json:"checkOutDate,omitempty"`
	NumberOfGuests  *int     `json:"numberOfGuests,omitempty" binding:"omitempty,min=1"`
	RoomRate        *float64 `json:"roomRate,omitempty" binding:"omitempty,gte=0"`
	TotalAmount     *float64 `json:"totalAmount,omitempty" binding:"omitempty,gte=0"`
	Status          *string  `json:"status,omitempty" binding:"omitempty,oneof=pending confirmed checked-in checked-out cancelled"`
	PaymentStatus   *string  `json:"paymentStatus,omitempty" binding:"omitempty,oneof=pending paid overdue"`
	Source          *string  `json:"source,omitempty" binding:"omitempty,oneof=website phone walk-in booking-agent email"`
	SpecialRequests *string  `json:"specialRequests,omitempty" binding:"omitempty,max=1000"`
}

// Fields returns only the fields that were provided
func (r *UpdateReservationRequest) Fields() Fields {
	f := Fields{}
	if r.GuestID != nil {
		f["guestId"] = *r.GuestID
	}
	if r.RoomID != nil {
		f["roomId"] = *r.RoomID
	}
	if r.CheckInDate != nil {
		f["checkInDate"] = *r.CheckInDate
	}
	if r.CheckOutDate != nil {
		f["checkOutDate"] = *r.CheckOutDate
	}
	if r.NumberOfGuests != nil {
		f["numberOfGuests"] = *r.NumberOfGuests
	}
	if r.RoomRate != nil {
		f["roomRate"] = *r.RoomRate
	}
	if r.TotalAmount != nil {
		f["totalAmount"] = *r.TotalAmount
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.PaymentStatus != nil {
		f["paymentStatus"] = *r.PaymentStatus
	}
	if r.Source != nil {
		f["source"] = *r.Source
	}
	if r.SpecialRequests != nil {
		f["specialRequests"] = *r.SpecialRequests
	}
	return f
}

// ReservationFilter narrows a reservation listing
type ReservationFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// TransitionResult reports the outcome of a guarded status change.
// Changed is false when the guard rejected the action and nothing was written.
type TransitionResult struct {
	Changed     bool              `json:"changed"`
	From        ReservationStatus `json:"from"`
	To          ReservationStatus `json:"to"`
	Reservation *Reservation      `json:"reservation"`
}

// ReservationStats counts reservations per status for the page header
type ReservationStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	CheckedIn  int `json:"checkedIn"`
	CheckedOut int `json:"checkedOut"`
	Cancelled  int `json:"cancelled"`
}
