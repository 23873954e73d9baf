package repository

import (
	"context"
	"errors"
	"time"

	"evcharge-booking/internal/domain/slot"
	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeUniqueViolation = "23505"

type SlotRepository struct {
	db db.DBTX
}

func NewSlotRepository(dbtx db.DBTX) *SlotRepository {
	return &SlotRepository{db: dbtx}
}

func (r *SlotRepository) CreateBatch(ctx context.Context, slots []*slot.Slot) error {
	const query = `
		INSERT INTO charging_slots (id, station_id, slot_date, start_time, end_time, is_booked)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, s := range slots {
		_, err := r.db.Exec(ctx, query,
			s.ID(), s.StationID(), pgconv.DateToPgtype(s.Start()), s.Start(), s.End(), s.IsBooked(),
		)
		if err != nil {
			if isPgErrCode(err, pgErrCodeUniqueViolation) {
				return infra.WrapRepoErr("slot already exists", err, infra.KindDuplicateKey)
			}
			return infra.WrapRepoErr("failed to create slot", err)
		}
	}
	return nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error) {
	const query = `
		SELECT id, station_id, start_time, end_time, is_booked, created_at, updated_at
		FROM charging_slots WHERE id = $1`

	var (
		slotID, stationID    uuid.UUID
		start, end           time.Time
		isBooked             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&slotID, &stationID, &start, &end, &isBooked, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot", err)
	}

	return slot.ReconstructSlot(
		slotID, stationID, start, end, isBooked,
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

func (r *SlotRepository) ExistsForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM charging_slots WHERE station_id = $1 AND slot_date = $2
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query, stationID, pgconv.DateToPgtype(day)).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot existence", err)
	}
	return exists, nil
}

func (r *SlotRepository) CountBookedForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error) {
	const query = `
		SELECT count(*) FROM charging_slots
		WHERE station_id = $1 AND slot_date = $2 AND is_booked`

	var count int64
	err := r.db.QueryRow(ctx, query, stationID, pgconv.DateToPgtype(day)).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count booked slots", err)
	}
	return count, nil
}

func (r *SlotRepository) DeleteForDay(ctx context.Context, stationID uuid.UUID, day time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM charging_slots WHERE station_id = $1 AND slot_date = $2`,
		stationID, pgconv.DateToPgtype(day),
	)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete slots for day", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) DeleteByStation(ctx context.Context, stationID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM charging_slots WHERE station_id = $1`, stationID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete station slots", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SlotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM charging_slots WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

// Claim is a compare-and-set: only one caller observes a row transition
// from unbooked to booked, every concurrent loser sees zero rows affected.
func (r *SlotRepository) Claim(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE charging_slots SET is_booked = TRUE, updated_at = now()
		WHERE id = $1 AND is_booked = FALSE`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to claim slot", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing slot from a lost race.
		var exists bool
		if scanErr := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM charging_slots WHERE id = $1)`, id,
		).Scan(&exists); scanErr != nil {
			return infra.WrapRepoErr("failed to check slot after claim", scanErr)
		}
		if !exists {
			return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("slot already booked", nil, infra.KindConflict)
	}
	return nil
}

func (r *SlotRepository) Release(ctx context.Context, id uuid.UUID) error {
	const query = `
		UPDATE charging_slots SET is_booked = FALSE, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code
}
