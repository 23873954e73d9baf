package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"evcharge-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	stationKeyPrefix = "station:view:"
	listAllKey       = "station:list:all"
	listPublicKey    = "station:list:public"
)

// StationInvalidator is implemented by the cache and consumed by every
// station-mutating command.
type StationInvalidator interface {
	Invalidate(ctx context.Context, id uuid.UUID)
}

// StationCache is a read-aside decorator over the station read store.
// Cache failures degrade to the underlying store, never to the caller.
type StationCache struct {
	inner  queries.StationReadStore
	client *redis.Client
	ttl    time.Duration
}

func NewStationCache(inner queries.StationReadStore, client *redis.Client, ttl time.Duration) *StationCache {
	return &StationCache{inner: inner, client: client, ttl: ttl}
}

func (c *StationCache) FindByID(ctx context.Context, id uuid.UUID) (*queries.StationView, error) {
	if c.client == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := stationKeyPrefix + id.String()
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var view queries.StationView
		if err := json.Unmarshal(data, &view); err == nil {
			return &view, nil
		}
	}

	view, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(view); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache station view", "station_id", id, "error", err.Error())
		}
	}
	return view, nil
}

func (c *StationCache) FindAll(ctx context.Context, publicOnly bool) ([]*queries.StationView, error) {
	if c.client == nil {
		return c.inner.FindAll(ctx, publicOnly)
	}

	key := listAllKey
	if publicOnly {
		key = listPublicKey
	}
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var views []*queries.StationView
		if err := json.Unmarshal(data, &views); err == nil {
			return views, nil
		}
	}

	views, err := c.inner.FindAll(ctx, publicOnly)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(views); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache station list", "error", err.Error())
		}
	}
	return views, nil
}

// Invalidate drops the station's view and both list keys after any mutation.
func (c *StationCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c.client == nil {
		return
	}
	keys := []string{stationKeyPrefix + id.String(), listAllKey, listPublicKey}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("failed to invalidate station cache", "station_id", id, "error", err.Error())
	}
}
