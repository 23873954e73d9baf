package commands

import (
	"context"
	"errors"
	"log/slog"

	"evcharge-booking/internal/domain/booking"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/pkg/clock"
	"evcharge-booking/internal/pkg/errs"
	"evcharge-booking/internal/pkg/mq"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrSlotAlreadyBooked   = errs.New("slot already booked")
	ErrStationInactive     = errs.New("station is not accepting bookings")
	ErrSlotStationMismatch = errs.New("slot does not belong to station")
	ErrInvalidTransition   = errs.New("invalid booking transition")
	ErrCancelWindowClosed  = errs.New("cancellation window has closed")
	ErrReservationPassed   = errs.New("reservation time has passed")
)

const (
	eventBookingCreated  = "booking.created"
	eventBookingCanceled = "booking.canceled"
	eventBookingReopened = "booking.reopened"
)

type BookingCommands interface {
	// Create claims the slot and opens a pending booking in one atomic unit.
	Create(ctx context.Context, actor shared.Actor, stationID, slotID uuid.UUID) (*queries.BookingView, error)
	Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error)
	Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error)
	Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error)
	Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error)
	Reopen(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
	publisher      mq.Publisher
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	clk clock.Clock,
	publisher mq.Publisher,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
		publisher:      publisher,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, actor shared.Actor, stationID, slotID uuid.UUID) (*queries.BookingView, error) {
	var bookingID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		st, err := tx.Stations().FindByID(ctx, stationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !st.AcceptsBookings() {
			return ErrStationInactive
		}

		sl, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if sl.StationID() != stationID {
			return ErrSlotStationMismatch
		}

		// The claim is the single serialization point; a lost race is a
		// routine outcome, not a fault.
		if err := tx.Slots().Claim(ctx, slotID); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotAlreadyBooked
			}
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		b := booking.NewBooking(actor.UserID, stationID, slotID, sl.Start())
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotAlreadyBooked
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		bookingID = b.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, eventBookingCreated, bookingID, actor)
	return c.bookingQueries.GetByID(ctx, bookingID)
}

func (c *bookingCommandsImpl) Approve(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, actor, id, func(b *booking.Booking) error { return b.Approve() }, true)
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, actor, id, func(b *booking.Booking) error { return b.Confirm() }, true)
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error) {
	return c.transition(ctx, actor, id, func(b *booking.Booking) error { return b.Complete() }, true)
}

// transition runs a single-record status update; these need no
// cross-booking coordination and leave the slot's booked flag untouched.
func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	actor shared.Actor,
	id uuid.UUID,
	apply func(*booking.Booking) error,
	requireManager bool,
) (*queries.BookingView, error) {
	if requireManager && !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	repos := c.uow.Repos()
	b, err := repos.Bookings().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	from := b.Status()
	if err := apply(b); err != nil {
		return nil, markTransitionErr(err)
	}

	if err := repos.Bookings().UpdateStatus(ctx, b, from); err != nil {
		// The stored status moved under us; the snapshot's transition no
		// longer applies.
		if infra.IsKind(err, infra.KindConflict) {
			return nil, errs.Mark(err, ErrInvalidTransition)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.bookingQueries.GetByID(ctx, id)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if b.UserID() != actor.UserID && !actor.CanManageStations() {
			return ErrForbidden
		}

		from := b.Status()
		if err := b.Cancel(c.clock.Now()); err != nil {
			return markTransitionErr(err)
		}

		if err := tx.Bookings().UpdateStatus(ctx, b, from); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrInvalidTransition)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := tx.Slots().Release(ctx, b.SlotID()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, eventBookingCanceled, id, actor)
	return c.bookingQueries.GetByID(ctx, id)
}

func (c *bookingCommandsImpl) Reopen(ctx context.Context, actor shared.Actor, id uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if b.UserID() != actor.UserID && !actor.CanManageStations() {
			return ErrForbidden
		}

		from := b.Status()
		if err := b.Reopen(c.clock.Now()); err != nil {
			return markTransitionErr(err)
		}

		// The slot may have been taken, or deleted outright, while the
		// booking was canceled.
		if err := tx.Slots().Claim(ctx, b.SlotID()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrSlotAlreadyBooked
			}
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Bookings().UpdateStatus(ctx, b, from); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrInvalidTransition)
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publish(ctx, eventBookingReopened, id, actor)
	return c.bookingQueries.GetByID(ctx, id)
}

func (c *bookingCommandsImpl) publish(ctx context.Context, key string, bookingID uuid.UUID, actor shared.Actor) {
	payload := map[string]any{
		"booking_id": bookingID,
		"user_id":    actor.UserID,
	}
	if err := c.publisher.PublishJSON(ctx, key, payload); err != nil {
		slog.Warn("failed to publish booking event", "event", key, "booking_id", bookingID, "error", err.Error())
	}
}

func markTransitionErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrCancelWindowClosed):
		return errs.Mark(err, ErrCancelWindowClosed)
	case errors.Is(err, booking.ErrReservationPassed):
		return errs.Mark(err, ErrReservationPassed)
	default:
		return errs.Mark(err, ErrInvalidTransition)
	}
}
