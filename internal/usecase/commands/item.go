package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/item"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository interface {
	Create(ctx context.Context, tx db.DBTX, i *item.Item) error
	Update(ctx context.Context, tx db.DBTX, i *item.Item) error
}

type CommentRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *item.Comment) error
}

type ItemViewFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error)
}

// FinishedBookingChecker backs the comment eligibility rule.
type FinishedBookingChecker interface {
	HasFinishedApprovedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error)
}

type ItemCommands interface {
	Create(ctx context.Context, req reqdto.CreateItemRequest, ownerID uuid.UUID) (*queries.ItemView, error)
	Update(ctx context.Context, req reqdto.UpdateItemRequest, actorID, itemID uuid.UUID) (*queries.ItemView, error)
	AddComment(ctx context.Context, req reqdto.CreateCommentRequest, authorID, itemID uuid.UUID) (*queries.CommentView, error)
}

type itemUseCaseImpl struct {
	itemRepo    ItemRepository
	commentRepo CommentRepository
	viewRepo    ItemViewFinder
	userRepo    UserExistenceRepo
	userFinder  UserViewFinder
	bookings    FinishedBookingChecker
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewItemUseCase(
	itemRepo ItemRepository,
	commentRepo CommentRepository,
	viewRepo ItemViewFinder,
	userRepo UserExistenceRepo,
	userFinder UserViewFinder,
	bookings FinishedBookingChecker,
	db *pgxpool.Pool,
	clock clock.Clock,
) ItemCommands {
	return &itemUseCaseImpl{
		itemRepo:    itemRepo,
		commentRepo: commentRepo,
		viewRepo:    viewRepo,
		userRepo:    userRepo,
		userFinder:  userFinder,
		bookings:    bookings,
		db:          db,
		clock:       clock,
	}
}

func (u *itemUseCaseImpl) Create(
	ctx context.Context,
	req reqdto.CreateItemRequest,
	ownerID uuid.UUID,
) (*queries.ItemView, error) {
	exists, err := u.userRepo.Exists(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	entity, err := item.NewItem(ownerID, req.Name, req.Description, *req.Available, req.RequestID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := u.itemRepo.Create(ctx, u.db, entity); err != nil {
		// The request link is the only nullable reference; a violated foreign
		// key here means the answered request is gone.
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.viewRepo.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Update applies a partial patch; only the owner may edit an item.
func (u *itemUseCaseImpl) Update(
	ctx context.Context,
	req reqdto.UpdateItemRequest,
	actorID, itemID uuid.UUID,
) (*queries.ItemView, error) {
	current, err := u.viewRepo.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if current.OwnerID != actorID {
		return nil, errs.ErrNotItemOwner
	}

	entity := item.ReconstructItem(current.ID, current.Name, current.Description, current.Available, current.OwnerID, current.RequestID)
	entity.ApplyPatch(req.Name, req.Description, req.Available)

	if err := u.itemRepo.Update(ctx, u.db, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.viewRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// AddComment stores feedback from a user whose approved booking on the item
// has already ended; anyone else is rejected.
func (u *itemUseCaseImpl) AddComment(
	ctx context.Context,
	req reqdto.CreateCommentRequest,
	authorID, itemID uuid.UUID,
) (*queries.CommentView, error) {
	author, err := u.userFinder.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if _, err := u.viewRepo.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrItemNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := u.clock.Now()
	eligible, err := u.bookings.HasFinishedApprovedBooking(ctx, itemID, authorID, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !eligible {
		return nil, errs.ErrCommentNotAllowed
	}

	entity, err := item.NewComment(itemID, authorID, req.Text, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := u.commentRepo.Create(ctx, u.db, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &queries.CommentView{
		ID:         entity.ID(),
		Text:       entity.Text(),
		AuthorName: author.Name,
		Created:    entity.CreatedAt(),
	}, nil
}
