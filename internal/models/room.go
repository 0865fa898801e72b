package models

import "time"

// RoomType is the sellable category of a room
type RoomType string

const (
	RoomTypeStandard     RoomType = "standard"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeFamily       RoomType = "family"
	RoomTypePresidential RoomType = "presidential"
)

// RoomStatus represents the housekeeping/occupancy state of a room
type RoomStatus string

const (
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusVacantClean RoomStatus = "vacant-clean"
	RoomStatusVacantDirty RoomStatus = "vacant-dirty"
	RoomStatusOutOfOrder  RoomStatus = "out-of-order"
)

// RoomStatuses lists every valid room status in display order
var RoomStatuses = []RoomStatus{
	RoomStatusOccupied,
	RoomStatusVacantClean,
	RoomStatusVacantDirty,
	RoomStatusOutOfOrder,
}

// IsValid checks the status against the known set
func (s RoomStatus) IsValid() bool {
	for _, v := range RoomStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Room represents a physical room in the property
type Room struct {
	ID           int64      `json:"id" db:"id"`
	Number       string     `json:"number" db:"number"`
	Type         RoomType   `json:"type" db:"room_type"`
	Floor        int        `json:"floor" db:"floor"`
	Status       RoomStatus `json:"status" db:"status"`
	BaseRate     float64    `json:"baseRate" db:"base_rate"`
	MaxOccupancy int        `json:"maxOccupancy" db:"max_occupancy"`
	LastCleaned  *time.Time `json:"lastCleaned" db:"last_cleaned"`
}

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	Number       string  `json:"number" yaml:"number" binding:"required,max=10"`
	Type         string  `json:"type" yaml:"type" binding:"required,oneof=standard deluxe suite family presidential"`
	Floor        int     `json:"floor" yaml:"floor" binding:"gte=0"`
	Status       string  `json:"status,omitempty" yaml:"status" binding:"omitempty,oneof=occupied vacant-clean vacant-dirty out-of-order"`
	BaseRate     float64 `json:"baseRate" yaml:"baseRate" binding:"gte=0"`
	MaxOccupancy int     `json:"maxOccupancy" yaml:"maxOccupancy" binding:"required,min=1"`
}

// Fields converts the request into a storable record; new rooms default to vacant-clean
func (r *CreateRoomRequest) Fields() Fields {
	status := r.Status
	if status == "" {
		status = string(RoomStatusVacantClean)
	}
	return Fields{
		"number":       r.Number,
		"type":         r.Type,
		"floor":        r.Floor,
		"status":       status,
		"baseRate":     r.BaseRate,
		"maxOccupancy": r.MaxOccupancy,
	}
}

// UpdateRoomRequest represents a partial room update
type UpdateRoomRequest struct {
	Number       *string  `json:"number,omitempty" binding:"omitempty,max=10"`
	Type         *string  `json:"type,omitempty" binding:"omitempty,oneof=standard deluxe suite family presidential"`
	Floor        *int     `json:"floor,omitempty" binding:"omitempty,gte=0"`
	Status       *string  `json:"status,omitempty" binding:"omitempty,oneof=occupied vacant-clean vacant-dirty out-of-order"`
	BaseRate     *float64 `json:"baseRate,omitempty" binding:"omitempty,gte=0"`
	MaxOccupancy *int     `json:"maxOccupancy,omitempty" binding:"omitempty,min=1"`
}

// Fields returns only the fields that were provided
func (r *UpdateRoomRequest) Fields() Fields {
	f := Fields{}
	if r.Number != nil {
		f["number"] = *r.Number
	}
	if r.Type != nil {
		f["type"] = *r.Type
	}
	if r.Floor != nil {
		f["floor"] = *r.Floor
	}
	if r.Status != nil {
		f["status"] = *r.Status
	}
	if r.BaseRate != nil {
		f["baseRate"] = *r.BaseRate
	}
	if r.MaxOccupancy != nil {
		f["maxOccupancy"] = *r.MaxOccupancy
	}
	return f
}

// RoomFilter narrows a room listing
type RoomFilter struct {
	Status string `form:"status"`
}

// RoomStats summarises the room grid
type RoomStats struct {
	Total         int                `json:"total"`
	ByStatus      map[RoomStatus]int `json:"byStatus"`
	OccupancyRate float64            `json:"occupancyRate"`
}

// FloorGroup is one row of the room grid
type FloorGroup struct {
	Floor int    `json:"floor"`
	Rooms []Room `json:"rooms"`
}
