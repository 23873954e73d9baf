package request

import "github.com/google/uuid"

type CreateBookingRequest struct {
	StationID uuid.UUID `json:"stationId" binding:"required"`
	SlotID    uuid.UUID `json:"slotId" binding:"required"`
}

// UpdateBookingRequest drives the status machine; cancel has its own
// endpoint because its rules differ.
type UpdateBookingRequest struct {
	Action string `json:"action" binding:"required,oneof=approve confirm complete reopen"`
}
