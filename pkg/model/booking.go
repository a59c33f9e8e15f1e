package model

import (
	"time"
)

// Booking is a reservation of one room for one contiguous [StartTime, EndTime)
// interval. Records are immutable after creation. All timestamps are UTC so
// JSON encoding yields the trailing-Z wire form.
type Booking struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBookingRequest carries the raw wire timestamps. The utcdatetime rule
// enforces ISO 8601 UTC instants with a mandatory trailing Z before anything
// is parsed.
type CreateBookingRequest struct {
	StartTime string `json:"startTime" validate:"required,utcdatetime"`
	EndTime   string `json:"endTime" validate:"required,utcdatetime"`
}

// BookingDeletionResult is returned when a booking is cancelled.
type BookingDeletionResult struct {
	ID        string    `json:"id"`
	DeletedAt time.Time `json:"deletedAt"`
}
