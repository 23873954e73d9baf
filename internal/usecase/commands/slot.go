package commands

import (
	"context"
	"time"

	"evcharge-booking/internal/domain/slot"
	"evcharge-booking/internal/domain/station"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/pkg/config"
	"evcharge-booking/internal/pkg/errs"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// DeinitializeResult reports how a station-day teardown went.
type DeinitializeResult struct {
	RemovedSlots     int64 `json:"removedSlots"`
	CanceledBookings int64 `json:"canceledBookings"`
}

type SlotCommands interface {
	// InitializeDay generates the full slot grid for a station-day. It
	// fails fast when any slot already exists for that day.
	InitializeDay(ctx context.Context, actor shared.Actor, stationID uuid.UUID, day time.Time) ([]*queries.SlotView, error)
	// DeinitializeDay removes a station-day's slots. Booking rows are kept
	// as history, detached from their slots. Active bookings block the
	// teardown unless force is set, in which case pending and approved
	// ones are canceled first regardless of the cancellation window;
	// confirmed and completed bookings block the teardown either way.
	DeinitializeDay(ctx context.Context, actor shared.Actor, stationID uuid.UUID, day time.Time, force bool) (*DeinitializeResult, error)
	DeleteSlot(ctx context.Context, actor shared.Actor, slotID uuid.UUID) error
}

type slotCommandsImpl struct {
	uow         shared.UnitOfWork
	slotQueries queries.SlotQueries
	slotCfg     config.SlotConfig
}

func NewSlotCommands(uow shared.UnitOfWork, slotQueries queries.SlotQueries, slotCfg config.SlotConfig) SlotCommands {
	return &slotCommandsImpl{uow: uow, slotQueries: slotQueries, slotCfg: slotCfg}
}

func (c *slotCommandsImpl) InitializeDay(ctx context.Context, actor shared.Actor, stationID uuid.UUID, day time.Time) ([]*queries.SlotView, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		st, err := tx.Stations().FindByID(ctx, stationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		exists, err := tx.Slots().ExistsForDay(ctx, stationID, day)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if exists {
			return ErrSlotsAlreadyInitialized
		}

		hours := st.Hours()
		if hours.IsZero() {
			hours, err = station.NewOperatingHours(c.slotCfg.DefaultOpenTime, c.slotCfg.DefaultCloseTime)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		slots, err := slot.GenerateDay(stationID, day, hours, c.slotCfg.Duration())
		if err != nil {
			return errs.Mark(err, ErrInvalidStationInput)
		}

		if err := tx.Slots().CreateBatch(ctx, slots); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrSlotsAlreadyInitialized
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.slotQueries.ListByStationDay(ctx, stationID, day)
}

func (c *slotCommandsImpl) DeinitializeDay(ctx context.Context, actor shared.Actor, stationID uuid.UUID, day time.Time, force bool) (*DeinitializeResult, error) {
	if !actor.CanManageStations() {
		return nil, ErrForbidden
	}

	result := &DeinitializeResult{}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Stations().FindByID(ctx, stationID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStationNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		booked, err := tx.Slots().CountBookedForDay(ctx, stationID, day)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if booked > 0 {
			if !force {
				return ErrSlotsHaveActiveBookings
			}
			canceled, err := tx.Bookings().CancelActiveForDay(ctx, stationID, day)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			result.CanceledBookings = canceled

			// Confirmed and completed bookings cannot be canceled; if any
			// remain booked the day is not removable even under force.
			remaining, err := tx.Slots().CountBookedForDay(ctx, stationID, day)
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if remaining > 0 {
				return ErrSlotsHaveActiveBookings
			}
		}

		// Canceled bookings survive teardown as history with no slot
		// reference.
		if _, err := tx.Bookings().DetachSlotForDay(ctx, stationID, day); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		removed, err := tx.Slots().DeleteForDay(ctx, stationID, day)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		result.RemovedSlots = removed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *slotCommandsImpl) DeleteSlot(ctx context.Context, actor shared.Actor, slotID uuid.UUID) error {
	if !actor.CanManageStations() {
		return ErrForbidden
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Slots().FindByID(ctx, slotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSlotNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if s.IsBooked() {
			return ErrSlotBooked
		}

		// Canceled bookings may still point at the slot; keep them as
		// detached history.
		if _, err := tx.Bookings().DetachFromSlot(ctx, slotID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := tx.Slots().Delete(ctx, slotID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}
