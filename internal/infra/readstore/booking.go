package readstore

import (
	"context"

	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"
	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Detached bookings (slot deleted by day teardown) must still appear in
// history, hence the LEFT JOIN; reserved_at stands in for the start time.
const bookingViewQuery = `
	SELECT b.id, b.user_id, b.station_id, st.name, b.slot_id,
	       COALESCE(sl.start_time, b.reserved_at), sl.end_time,
	       b.status, b.created_at, b.updated_at
	FROM bookings b
	JOIN stations st ON st.id = b.station_id
	LEFT JOIN charging_slots sl ON sl.id = b.slot_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.id = $1`

	view, err := scanBookingView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindAll(ctx context.Context) ([]*queries.BookingView, error) {
	query := bookingViewQuery + ` ORDER BY b.created_at DESC`
	return r.queryBookingViews(ctx, query)
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	query := bookingViewQuery + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`
	return r.queryBookingViews(ctx, query, userID)
}

func (r *BookingReadStore) queryBookingViews(ctx context.Context, query string, args ...any) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return views, nil
}

func scanBookingView(row scanner) (*queries.BookingView, error) {
	var (
		v                    queries.BookingView
		slotID               pgtype.UUID
		endTime              pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&v.ID, &v.UserID, &v.StationID, &v.StationName, &slotID,
		&v.StartTime, &endTime, &v.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.SlotID = pgconv.UUIDPtrFromPgtype(slotID)
	v.EndTime = pgconv.TimePtrFromPgtype(endTime)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &v, nil
}
