package readstore

import (
	"context"
	"time"

	"evcharge-booking/internal/infra"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/pkg/pgconv"
	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

func (r *SlotReadStore) FindByStationDay(ctx context.Context, stationID uuid.UUID, day time.Time) ([]*queries.SlotView, error) {
	const query = `
		SELECT id, station_id, start_time, end_time, is_booked
		FROM charging_slots
		WHERE station_id = $1 AND slot_date = $2
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, stationID, pgconv.DateToPgtype(day))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var views []*queries.SlotView
	for rows.Next() {
		var v queries.SlotView
		if err := rows.Scan(&v.ID, &v.StationID, &v.StartTime, &v.EndTime, &v.IsBooked); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}
	return views, nil
}
