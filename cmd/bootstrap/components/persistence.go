package components

import (
	"evcharge-booking/internal/infra/cache"
	"evcharge-booking/internal/infra/db"
	"evcharge-booking/internal/infra/readstore"
	"evcharge-booking/internal/infra/uow"
	"evcharge-booking/internal/pkg/config"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"
	"evcharge-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	fx.Annotate(
		uow.NewPostgresUoW,
		fx.As(new(shared.UnitOfWork)),
	),
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Station reads go through the redis-backed decorator; a nil
		// client degrades to the underlying store.
		NewStationCache,
		func(c *cache.StationCache) queries.StationReadStore { return c },
		func(c *cache.StationCache) commands.StationCacheInvalidator { return c },
		fx.Annotate(
			readstore.NewSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewStationCache(dbtx db.DBTX, client *redis.Client, cfg config.Config) *cache.StationCache {
	return cache.NewStationCache(readstore.NewStationReadStore(dbtx), client, cfg.Redis.TTL)
}
