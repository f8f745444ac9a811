package components

import (
	"gearshare/internal/handler"
	"gearshare/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewItemHandler,
		api.NewUserHandler,
		api.NewItemRequestHandler,
	),
	fx.Invoke(handler.NewRouter),
)
