package queries

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*RequestWithAnswersView, error)
	ListOwn(ctx context.Context, requesterID uuid.UUID) ([]*RequestWithAnswersView, error)
	ListOthers(ctx context.Context, actorID uuid.UUID) ([]*RequestView, error)
}

type RequestViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error)
	ListOthers(ctx context.Context, requesterID uuid.UUID) ([]*RequestView, error)
}

// RequestAnswerRepo resolves the items offered in response to requests.
type RequestAnswerRepo interface {
	AnswersForRequests(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]RequestAnswer, error)
}

type requestQueriesImpl struct {
	repo     RequestViewRepo
	itemRepo RequestAnswerRepo
	userRepo UserExistenceRepo
}

func NewRequestQueries(repo RequestViewRepo, itemRepo RequestAnswerRepo, userRepo UserExistenceRepo) RequestQueries {
	return &requestQueriesImpl{
		repo:     repo,
		itemRepo: itemRepo,
		userRepo: userRepo,
	}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*RequestWithAnswersView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRequestNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	withAnswers, err := q.attachAnswers(ctx, []*RequestView{view})
	if err != nil {
		return nil, err
	}
	return withAnswers[0], nil
}

// ListOwn returns the user's requests, newest first, each with the items
// offered in answer resolved in one batched lookup.
func (q *requestQueriesImpl) ListOwn(ctx context.Context, requesterID uuid.UUID) ([]*RequestWithAnswersView, error) {
	if err := q.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	views, err := q.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return q.attachAnswers(ctx, views)
}

func (q *requestQueriesImpl) ListOthers(ctx context.Context, actorID uuid.UUID) ([]*RequestView, error) {
	if err := q.requireUser(ctx, actorID); err != nil {
		return nil, err
	}

	views, err := q.repo.ListOthers(ctx, actorID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *requestQueriesImpl) attachAnswers(ctx context.Context, views []*RequestView) ([]*RequestWithAnswersView, error) {
	ids := make([]uuid.UUID, len(views))
	for i, view := range views {
		ids[i] = view.ID
	}

	answers, err := q.itemRepo.AnswersForRequests(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	result := make([]*RequestWithAnswersView, len(views))
	for i, view := range views {
		withAnswers := &RequestWithAnswersView{RequestView: *view, Items: answers[view.ID]}
		if withAnswers.Items == nil {
			withAnswers.Items = []RequestAnswer{}
		}
		result[i] = withAnswers
	}
	return result, nil
}

func (q *requestQueriesImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := q.userRepo.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
