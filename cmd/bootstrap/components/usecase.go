package components

import (
	"gearshare/internal/pkg/clock"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewItemUseCase,
		commands.NewUserUseCase,
		commands.NewRequestUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewItemQueries,
		queries.NewUserQueries,
		queries.NewRequestQueries,
	),
)
