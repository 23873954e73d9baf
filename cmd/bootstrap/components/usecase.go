package components

import (
	"evcharge-booking/internal/pkg/clock"
	"evcharge-booking/internal/pkg/config"
	"evcharge-booking/internal/usecase/commands"
	"evcharge-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config) config.SlotConfig { return cfg.Slot },
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewStationQueries,
		queries.NewSlotQueries,
		queries.NewBookingQueries,
		queries.NewUserQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewStationCommands,
		commands.NewSlotCommands,
		commands.NewBookingCommands,
	),
)
