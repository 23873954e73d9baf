package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrInvalidTransition  = errors.New("invalid booking transition")
	ErrCancelWindowClosed = errors.New("cancellation window has closed")
	ErrReservationPassed  = errors.New("reservation time has passed")
)

// InvalidTransitionError reports the state a booking was in and the
// operation that was illegal from it.
type InvalidTransitionError struct {
	From      Status
	Operation string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking in status %q", e.Operation, e.From)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Booking is the lifecycle owner of one claimed slot. Station and slot
// identities are immutable after creation; bookings are never physically
// destroyed except by a station cascade delete.
type Booking struct {
	id         uuid.UUID
	userID     uuid.UUID
	stationID  uuid.UUID
	slotID     uuid.UUID
	reservedAt time.Time // slot start time
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking starts in pending. The caller must have claimed the slot first.
func NewBooking(userID, stationID, slotID uuid.UUID, reservedAt time.Time) *Booking {
	return &Booking{
		id:         uuid.New(),
		userID:     userID,
		stationID:  stationID,
		slotID:     slotID,
		reservedAt: reservedAt,
		status:     StatusPending,
	}
}

func ReconstructBooking(
	id, userID, stationID, slotID uuid.UUID,
	reservedAt time.Time,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		userID:     userID,
		stationID:  stationID,
		slotID:     slotID,
		reservedAt: reservedAt,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) Approve() error {
	if b.status != StatusPending {
		return &InvalidTransitionError{From: b.status, Operation: "approve"}
	}
	b.status = StatusApproved
	return nil
}

func (b *Booking) Confirm() error {
	if b.status != StatusApproved {
		return &InvalidTransitionError{From: b.status, Operation: "confirm"}
	}
	b.status = StatusConfirmed
	return nil
}

func (b *Booking) Complete() error {
	if b.status != StatusConfirmed {
		return &InvalidTransitionError{From: b.status, Operation: "complete"}
	}
	b.status = StatusCompleted
	return nil
}

// Cancel is legal from pending or approved and only while the cancellation
// window is open. The caller releases the slot after a successful cancel.
func (b *Booking) Cancel(now time.Time) error {
	if b.status != StatusPending && b.status != StatusApproved {
		return &InvalidTransitionError{From: b.status, Operation: "cancel"}
	}
	if !CanCancel(b.reservedAt, now) {
		return ErrCancelWindowClosed
	}
	b.status = StatusCanceled
	return nil
}

// Reopen returns a canceled booking to pending while the reservation is
// still in the future. The caller must re-claim the slot; the claim can
// fail if another booking took it in the meantime.
func (b *Booking) Reopen(now time.Time) error {
	if b.status != StatusCanceled {
		return &InvalidTransitionError{From: b.status, Operation: "reopen"}
	}
	if !CanReopen(b.reservedAt, now) {
		return ErrReservationPassed
	}
	b.status = StatusPending
	return nil
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) StationID() uuid.UUID  { return b.stationID }
func (b *Booking) SlotID() uuid.UUID     { return b.slotID }
func (b *Booking) ReservedAt() time.Time { return b.reservedAt }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
