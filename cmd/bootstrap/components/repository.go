package components

import (
	"gearshare/internal/infra/db"
	"gearshare/internal/infra/readstore"
	"gearshare/internal/infra/writerepo"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	readstoreModule,
	writerepoModule,
)

var readstoreModule = fx.Module("repository/readstore",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
			fx.As(new(queries.BookingSlotRepo)),
			fx.As(new(commands.BookingSnapshotRepo)),
			fx.As(new(commands.BookingViewFinder)),
			fx.As(new(commands.FinishedBookingChecker)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemViewRepo)),
			fx.As(new(queries.OwnedItemCountRepo)),
			fx.As(new(queries.RequestAnswerRepo)),
			fx.As(new(commands.ItemSnapshotRepo)),
			fx.As(new(commands.ItemViewFinder)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserViewRepo)),
			fx.As(new(queries.UserExistenceRepo)),
			fx.As(new(commands.UserExistenceRepo)),
			fx.As(new(commands.UserViewFinder)),
			fx.As(new(commands.EmailUsageRepo)),
		),
		fx.Annotate(
			readstore.NewRequestReadStore,
			fx.As(new(queries.RequestViewRepo)),
			fx.As(new(commands.RequestViewFinder)),
		),
	),
)

var writerepoModule = fx.Module("repository/writerepo",
	fx.Provide(
		fx.Annotate(
			writerepo.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			writerepo.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
		),
		fx.Annotate(
			writerepo.NewCommentRepository,
			fx.As(new(commands.CommentRepository)),
		),
		fx.Annotate(
			writerepo.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			writerepo.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
