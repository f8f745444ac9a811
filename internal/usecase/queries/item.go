package queries

import (
	"context"
	"strings"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type ItemQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ItemDetailView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetailView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
}

type ItemViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemView, error)
	Search(ctx context.Context, text string) ([]*ItemView, error)
	CommentsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]CommentView, error)
}

// BookingSlotRepo supplies the per-item last/next aggregates used to enrich
// owner views.
type BookingSlotRepo interface {
	LastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*BookingSlotView, error)
	NextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*BookingSlotView, error)
}

type itemQueriesImpl struct {
	repo        ItemViewRepo
	bookingRepo BookingSlotRepo
	clock       clock.Clock
}

func NewItemQueries(repo ItemViewRepo, bookingRepo BookingSlotRepo, clock clock.Clock) ItemQueries {
	return &itemQueriesImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		clock:       clock,
	}
}

// GetByID returns the item with its comments. LastBooking and NextBooking are
// populated only when the actor owns the item; everyone else sees the same
// item without the temporal facts.
func (q *itemQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*ItemDetailView, error) {
	item, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	details, err := q.enrich(ctx, []*ItemView{item}, item.OwnerID == actorID)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

// ListByOwner returns the owner's items with last/next and comments resolved
// in three batched queries regardless of item count.
func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*ItemDetailView, error) {
	items, err := q.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.enrich(ctx, items, true)
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]*ItemView, error) {
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	items, err := q.repo.Search(ctx, text)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return items, nil
}

func (q *itemQueriesImpl) enrich(ctx context.Context, items []*ItemView, asOwner bool) ([]*ItemDetailView, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	comments, err := q.repo.CommentsForItems(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var last, next map[uuid.UUID]*BookingSlotView
	if asOwner {
		now := q.clock.Now()
		if last, err = q.bookingRepo.LastForItems(ctx, ids, now); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if next, err = q.bookingRepo.NextForItems(ctx, ids, now); err != nil {
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	details := make([]*ItemDetailView, len(items))
	for i, item := range items {
		detail := &ItemDetailView{ItemView: *item, Comments: comments[item.ID]}
		if detail.Comments == nil {
			detail.Comments = []CommentView{}
		}
		if asOwner {
			detail.LastBooking = last[item.ID]
			detail.NextBooking = next[item.ID]
		}
		details[i] = detail
	}
	return details, nil
}
