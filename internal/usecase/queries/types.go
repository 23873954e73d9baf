package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type StationView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ConnectorTypes []string  `json:"connectorTypes"`
	ConnectorCount int       `json:"connectorCount"`
	IsActive       bool      `json:"isActive"`
	IsPublic       bool      `json:"isPublic"`
	OpenTime       string    `json:"openTime"`
	CloseTime      string    `json:"closeTime"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	Amenities      []string  `json:"amenities"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type SlotView struct {
	ID        uuid.UUID `json:"id"`
	StationID uuid.UUID `json:"stationId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	IsBooked  bool      `json:"isBooked"`
}

// BookingView keeps slot fields nullable: bookings outlive their slots as
// detached history once a station-day is deinitialized.
type BookingView struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	StationID   uuid.UUID  `json:"stationId"`
	StationName string     `json:"stationName"`
	SlotID      *uuid.UUID `json:"slotId"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}
