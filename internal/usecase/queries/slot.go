package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	FindByStationDay(ctx context.Context, stationID uuid.UUID, day time.Time) ([]*SlotView, error)
}

type SlotQueries interface {
	// ListByStationDay returns the day's slots ordered by start time.
	ListByStationDay(ctx context.Context, stationID uuid.UUID, day time.Time) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	store SlotReadStore
}

func NewSlotQueries(store SlotReadStore) SlotQueries {
	return &slotQueriesImpl{store: store}
}

func (q *slotQueriesImpl) ListByStationDay(ctx context.Context, stationID uuid.UUID, day time.Time) ([]*SlotView, error) {
	return q.store.FindByStationDay(ctx, stationID, day)
}
