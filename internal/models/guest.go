package models

import (
	"strings"
	"time"
)

// Guest represents a guest profile
type Guest struct {
	ID          int64     `json:"id" db:"id"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	Address     string    `json:"address" db:"address"`
	VIPStatus   bool      `json:"vipStatus" db:"vip_status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	StayHistory IDList    `json:"stayHistory" db:"stay_history"`
}

// FullName joins first and last name
func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// CreateGuestRequest represents the request to create a guest
type CreateGuestRequest struct {
	FirstName string `json:"firstName" yaml:"firstName" binding:"required,max=100"`
	LastName  string `json:"lastName" yaml:"lastName" binding:"required,max=100"`
	Email     string `json:"email" yaml:"email" binding:"required,email"`
	Phone     string `json:"phone" yaml:"phone" binding:"required,phone"`
	Address   string `json:"address" yaml:"address" binding:"max=500"`
	VIPStatus bool   `json:"vipStatus" yaml:"vipStatus"`
}

// Fields converts the request into a storable record. createdAt and
// stayHistory are owned by the service.
func (r *CreateGuestRequest) Fields() Fields {
	return Fields{
		"firstName": r.FirstName,
		"lastName":  r.LastName,
		"email":     strings.ToLower(strings.TrimSpace(r.Email)),
		"phone":     r.Phone,
		"address":   r.Address,
		"vipStatus": r.VIPStatus,
	}
}

// UpdateGuestRequest represents a partial guest update
type UpdateGuestRequest struct {
	FirstName *string `json:"firstName,omitempty" binding:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" binding:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" binding:"omitempty,phone"`
	Address   *string `json:"address,omitempty" binding:"omitempty,max=500"`
	VIPStatus *bool   `json:"vipStatus,omitempty"`
}

// Fields returns only the fields that were provided
func (r *UpdateGuestRequest) Fields() Fields {
	f := Fields{}
	if r.FirstName != nil {
		f["firstName"] = *r.FirstName
	}
	if r.LastName != nil {
		f["lastName"] = *r.LastName
	}
	if r.Email != nil {
		f["email"] = strings.ToLower(strings.TrimSpace(*r.Email))
	}
	if r.Phone != nil {
		f["phone"] = *r.Phone
	}
	if r.Address != nil {
		f["address"] = *r.Address
	}
	if r.VIPStatus != nil {
		f["vipStatus"] = *r.VIPStatus
	}
	return f
}

// GuestFilter narrows a guest listing; VIP is all, vip or regular
type GuestFilter struct {
	Search string `form:"search"`
	VIP    string `form:"vip"`
}

// GuestStats summarises the guest directory
type GuestStats struct {
	Total     int `json:"total"`
	VIP       int `json:"vip"`
	Regular   int `json:"regular"`
	WithStays int `json:"withStays"`
}
