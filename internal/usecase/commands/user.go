package commands

import (
	"context"

	"gearshare/internal/domain/user"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
	Update(ctx context.Context, tx db.DBTX, u *user.User) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type EmailUsageRepo interface {
	EmailInUse(ctx context.Context, email string) (bool, error)
}

type UserCommands interface {
	Create(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error)
	Update(ctx context.Context, req reqdto.UpdateUserRequest, userID uuid.UUID) (*queries.UserView, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type userUseCaseImpl struct {
	userRepo   UserRepository
	emails     EmailUsageRepo
	userFinder UserViewFinder
	db         *pgxpool.Pool
}

func NewUserUseCase(
	userRepo UserRepository,
	emails EmailUsageRepo,
	userFinder UserViewFinder,
	db *pgxpool.Pool,
) UserCommands {
	return &userUseCaseImpl{
		userRepo:   userRepo,
		emails:     emails,
		userFinder: userFinder,
		db:         db,
	}
}

func (u *userUseCaseImpl) Create(ctx context.Context, req reqdto.CreateUserRequest) (*queries.UserView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	entity, err := user.NewUser(req.Name, email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	inUse, err := u.emails.EmailInUse(ctx, email.String())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if inUse {
		return nil, errs.ErrEmailAlreadyInUse
	}

	if err := u.userRepo.Create(ctx, u.db, entity); err != nil {
		// The unique index is authoritative; the pre-check only loses a race.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailAlreadyInUse)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.userFinder.FindByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *userUseCaseImpl) Update(ctx context.Context, req reqdto.UpdateUserRequest, userID uuid.UUID) (*queries.UserView, error) {
	current, err := u.userFinder.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	currentEmail, err := user.NewEmail(current.Email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var newEmail *user.Email
	if req.Email != nil {
		email, err := user.NewEmail(*req.Email)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		if email.String() != currentEmail.String() {
			inUse, err := u.emails.EmailInUse(ctx, email.String())
			if err != nil {
				return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if inUse {
				return nil, errs.ErrEmailAlreadyInUse
			}
		}
		newEmail = &email
	}

	entity := user.ReconstructUser(current.ID, current.Name, currentEmail)
	entity.ApplyPatch(req.Name, newEmail)

	if err := u.userRepo.Update(ctx, u.db, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, errs.Mark(err, errs.ErrEmailAlreadyInUse)
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	view, err := u.userFinder.FindByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (u *userUseCaseImpl) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := u.userRepo.Delete(ctx, u.db, userID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrUserNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
