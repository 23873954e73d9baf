package queries

import (
	"context"

	"github.com/google/uuid"
)

type StationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StationView, error)
	FindAll(ctx context.Context, publicOnly bool) ([]*StationView, error)
}

type StationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StationView, error)
	// ListAll with publicOnly restricts to publicly visible active stations,
	// the surface map clients consume.
	ListAll(ctx context.Context, publicOnly bool) ([]*StationView, error)
}

type stationQueriesImpl struct {
	store StationReadStore
}

func NewStationQueries(store StationReadStore) StationQueries {
	return &stationQueriesImpl{store: store}
}

func (q *stationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*StationView, error) {
	return q.store.FindByID(ctx, id)
}

func (q *stationQueriesImpl) ListAll(ctx context.Context, publicOnly bool) ([]*StationView, error) {
	return q.store.FindAll(ctx, publicOnly)
}
