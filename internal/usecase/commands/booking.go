package commands

import (
	"context"

	"gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	UpdateStatusIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error)
}

type BookingSnapshotRepo interface {
	FindSnapshot(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

type ItemSnapshotRepo interface {
	FindSnapshot(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
}

type BookingViewFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, bookerID uuid.UUID) (*queries.BookingView, error)
	Decide(ctx context.Context, actorID, bookingID uuid.UUID, approved bool) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	snapshots   BookingSnapshotRepo
	itemRepo    ItemSnapshotRepo
	userRepo    UserExistenceRepo
	viewRepo    BookingViewFinder
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	snapshots BookingSnapshotRepo,
	itemRepo ItemSnapshotRepo,
	userRepo UserExistenceRepo,
	viewRepo BookingViewFinder,
	db *pgxpool.Pool,
	clock clock.Clock,
) BookingCommands {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		snapshots:   snapshots,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		viewRepo:    viewRepo,
		db:          db,
		clock:       clock,
	}
}

// Create validates the booker, the item and the slot, then inserts the booking
// in the WAITING state. Validation order is fixed: unknown user, then unknown
// item, then self-booking, then availability.
func (u *bookingUseCaseImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	bookerID uuid.UUID,
) (*queries.BookingView, error) {
	exists, err := u.userRepo.Exists(ctx, bookerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	item, err := u.itemRepo.FindSnapshot(ctx, req.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if item.OwnerID == bookerID {
		return nil, errs.ErrOwnBookingNotAllowed
	}
	if !item.Available {
		return nil, errs.ErrItemUnavailable
	}

	entity, err := booking.NewBooking(u.clock.Now(), bookerID, req.ItemID, req.Start, req.End)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := u.bookingRepo.Create(ctx, u.db, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.viewRepo.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Decide lets the item's owner approve or reject a WAITING booking. The
// transition itself is a conditional update keyed on the WAITING status, so a
// concurrent decision surfaces as zero affected rows rather than a lost write.
func (u *bookingUseCaseImpl) Decide(
	ctx context.Context,
	actorID, bookingID uuid.UUID,
	approved bool,
) (*queries.BookingView, error) {
	snap, err := u.snapshots.FindSnapshot(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if snap.ItemOwnerID != actorID {
		return nil, errs.ErrNotItemOwner
	}

	entity := booking.ReconstructBooking(snap.ID, snap.Start, snap.End, snap.Status, snap.BookerID, snap.ItemID)
	if err := entity.Decide(approved); err != nil {
		return nil, errs.Mark(err, errs.ErrBookingAlreadyDecided)
	}

	affected, err := u.bookingRepo.UpdateStatusIfWaiting(ctx, u.db, bookingID, entity.Status())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if affected == 0 {
		return nil, errs.ErrBookingAlreadyDecided
	}

	view, err := u.viewRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
