package repository

import (
	"context"
	"time"

	"evcharge-booking/internal/domain/booking"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (id, user_id, station_id, slot_id, reserved_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		b.ID(), b.UserID(), b.StationID(), b.SlotID(), b.ReservedAt(), b.Status().String(),
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			// Partial unique index on (slot_id) WHERE status <> 'canceled'
			return infra.WrapRepoErr("slot already has an active booking", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	// Compare-and-set on the status column: a writer whose snapshot went
	// stale must not overwrite a transition committed in between.
	const query = `
		UPDATE bookings SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3`

	tag, err := r.db.Exec(ctx, query, b.ID(), b.Status().String(), from.String())
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("slot already has an active booking", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if scanErr := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, b.ID(),
		).Scan(&exists); scanErr != nil {
			return infra.WrapRepoErr("failed to check booking after update", scanErr)
		}
		if !exists {
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	const query = `
		SELECT id, user_id, station_id, slot_id, reserved_at, status, created_at, updated_at
		FROM bookings WHERE id = $1`

	var (
		bookingID, userID    uuid.UUID
		stationID            uuid.UUID
		slotID               pgtype.UUID
		reservedAt           time.Time
		status               string
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bookingID, &userID, &stationID, &slotID, &reservedAt, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid booking status in storage", err)
	}

	// Detached history rows carry a NULL slot reference.
	var slot uuid.UUID
	if slotID.Valid {
		slot = uuid.UUID(slotID.Bytes)
	}

	return booking.ReconstructBooking(
		bookingID, userID, stationID, slot, reservedAt, st,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *BookingRepository) CancelActiveForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error) {
	// Only pending and approved bookings are cancelable; their slots are
	// released in the same statement so the booked flag keeps tracking
	// active bookings. Confirmed and completed rows are left alone.
	const query = `
		WITH canceled AS (
			UPDATE bookings SET status = 'canceled', updated_at = now()
			WHERE station_id = $1
			  AND status IN ('pending', 'approved')
			  AND slot_id IN (
				SELECT id FROM charging_slots WHERE station_id = $1 AND slot_date = $2
			  )
			RETURNING slot_id
		)
		UPDATE charging_slots SET is_booked = FALSE, updated_at = now()
		WHERE id IN (SELECT slot_id FROM canceled)`

	tag, err := r.db.Exec(ctx, query, stationID, pgconv.DateToPgtype(day))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel bookings for day", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) DetachSlotForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error) {
	const query = `
		UPDATE bookings SET slot_id = NULL, updated_at = now()
		WHERE slot_id IN (
			SELECT id FROM charging_slots WHERE station_id = $1 AND slot_date = $2
		)`

	tag, err := r.db.Exec(ctx, query, stationID, pgconv.DateToPgtype(day))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to detach bookings for day", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) DetachFromSlot(ctx context.Context, slotID uuid.UUID) (int64, error) {
	const query = `
		UPDATE bookings SET slot_id = NULL, updated_at = now()
		WHERE slot_id = $1`

	tag, err := r.db.Exec(ctx, query, slotID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to detach bookings from slot", err)
	}
	return tag.RowsAffected(), nil
}

func (r *BookingRepository) DeleteByStation(ctx context.Context, stationID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE station_id = $1`, stationID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete station bookings", err)
	}
	return tag.RowsAffected(), nil
}
