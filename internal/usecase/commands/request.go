package commands

import (
	"context"

	"gearshare/internal/domain/request"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *request.ItemRequest) error
}

type RequestViewFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error)
}

type RequestCommands interface {
	Create(ctx context.Context, req reqdto.CreateItemRequestRequest, requesterID uuid.UUID) (*queries.RequestView, error)
}

type requestUseCaseImpl struct {
	requestRepo RequestRepository
	viewRepo    RequestViewFinder
	userRepo    UserExistenceRepo
	db          *pgxpool.Pool
	clock       clock.Clock
}

func NewRequestUseCase(
	requestRepo RequestRepository,
	viewRepo RequestViewFinder,
	userRepo UserExistenceRepo,
	db *pgxpool.Pool,
	clock clock.Clock,
) RequestCommands {
	return &requestUseCaseImpl{
		requestRepo: requestRepo,
		viewRepo:    viewRepo,
		userRepo:    userRepo,
		db:          db,
		clock:       clock,
	}
}

func (u *requestUseCaseImpl) Create(
	ctx context.Context,
	req reqdto.CreateItemRequestRequest,
	requesterID uuid.UUID,
) (*queries.RequestView, error) {
	exists, err := u.userRepo.Exists(ctx, requesterID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	entity, err := request.NewItemRequest(requesterID, req.Description, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := u.requestRepo.Create(ctx, u.db, entity); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.viewRepo.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}
