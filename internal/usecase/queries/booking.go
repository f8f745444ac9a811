package queries

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error)
	ListForUser(ctx context.Context, perspective booking.Perspective, userID uuid.UUID, filter booking.ViewFilter) ([]*BookingView, error)
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListForSubject(ctx context.Context, perspective booking.Perspective, subjectID uuid.UUID, filter booking.ViewFilter, now time.Time) ([]*BookingView, error)
}

type UserExistenceRepo interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type OwnedItemCountRepo interface {
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type bookingQueriesImpl struct {
	repo     BookingViewRepo
	userRepo UserExistenceRepo
	itemRepo OwnedItemCountRepo
	clock    clock.Clock
}

func NewBookingQueries(repo BookingViewRepo, userRepo UserExistenceRepo, itemRepo OwnedItemCountRepo, clock clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		repo:     repo,
		userRepo: userRepo,
		itemRepo: itemRepo,
		clock:    clock,
	}
}

// GetByID returns the booking only to its booker or the item's owner.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*BookingView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if view.Booker.ID != actorID && view.ItemOwnerID != actorID {
		return nil, errs.ErrBookingNoAccess
	}
	return view, nil
}

// ListForUser classifies the subject's bookings against a single reference
// instant sampled here, so every row in one response is judged at the same
// moment. The owner perspective requires the user to own at least one item.
func (q *bookingQueriesImpl) ListForUser(
	ctx context.Context,
	perspective booking.Perspective,
	userID uuid.UUID,
	filter booking.ViewFilter,
) ([]*BookingView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if perspective == booking.AsOwner {
		count, err := q.itemRepo.CountByOwner(ctx, userID)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if count == 0 {
			return nil, errs.ErrNoItemsOwned
		}
	}

	views, err := q.repo.ListForSubject(ctx, perspective, userID, filter, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *bookingQueriesImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := q.userRepo.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
