//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"gearshare/internal/domain/item"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Create(ctx context.Context, tx db.DBTX, i *item.Item) error {
	args := m.Called(ctx, tx, i)
	return args.Error(0)
}

func (m *mockItemRepo) Update(ctx context.Context, tx db.DBTX, i *item.Item) error {
	args := m.Called(ctx, tx, i)
	return args.Error(0)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Create(ctx context.Context, tx db.DBTX, c *item.Comment) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

type mockItemViewFinder struct{ mock.Mock }

func (m *mockItemViewFinder) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	args := m.Called(ctx, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.ItemView), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockUserViewFinder struct{ mock.Mock }

func (m *mockUserViewFinder) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	args := m.Called(ctx, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.UserView), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFinishedBookingChecker struct{ mock.Mock }

func (m *mockFinishedBookingChecker) HasFinishedApprovedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, itemID, userID, now)
	return args.Bool(0), args.Error(1)
}

type itemUseCaseMocks struct {
	itemRepo    *mockItemRepo
	commentRepo *mockCommentRepo
	viewRepo    *mockItemViewFinder
	userRepo    *mockUserExistenceRepo
	userFinder  *mockUserViewFinder
	bookings    *mockFinishedBookingChecker
	clock       *clock.MockClock
}

var itemTestNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newItemUseCase() (commands.ItemCommands, *itemUseCaseMocks) {
	m := &itemUseCaseMocks{
		itemRepo:    &mockItemRepo{},
		commentRepo: &mockCommentRepo{},
		viewRepo:    &mockItemViewFinder{},
		userRepo:    &mockUserExistenceRepo{},
		userFinder:  &mockUserViewFinder{},
		bookings:    &mockFinishedBookingChecker{},
		clock:       clock.NewMockClock(itemTestNow),
	}
	uc := commands.NewItemUseCase(m.itemRepo, m.commentRepo, m.viewRepo, m.userRepo, m.userFinder, m.bookings, nil, m.clock)
	return uc, m
}

func TestItemUpdate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	current := &queries.ItemView{
		ID:          uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V with two batteries",
		Available:   true,
		OwnerID:     owner,
	}

	t.Run("owner patches only the given fields", func(t *testing.T) {
		uc, m := newItemUseCase()

		newName := "Cordless Drill Mk2"
		m.viewRepo.On("FindByID", ctx, current.ID).Return(current, nil)
		m.itemRepo.On("Update", ctx, mock.Anything, mock.Anything).Return(nil)

		_, err := uc.Update(ctx, reqdto.UpdateItemRequest{Name: &newName}, owner, current.ID)
		require.NoError(t, err)

		updated := m.itemRepo.Calls[0].Arguments.Get(2).(*item.Item)
		assert.Equal(t, newName, updated.Name())
		assert.Equal(t, current.Description, updated.Description())
		assert.True(t, updated.Available())
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		uc, m := newItemUseCase()

		m.viewRepo.On("FindByID", ctx, current.ID).Return(current, nil)

		_, err := uc.Update(ctx, reqdto.UpdateItemRequest{}, uuid.New(), current.ID)
		require.ErrorIs(t, err, errs.ErrNotItemOwner)
		m.itemRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown item", func(t *testing.T) {
		uc, m := newItemUseCase()
		id := uuid.New()

		m.viewRepo.On("FindByID", ctx, id).Return(nil, notFoundErr("item not found"))

		_, err := uc.Update(ctx, reqdto.UpdateItemRequest{}, owner, id)
		require.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

func TestAddComment(t *testing.T) {
	ctx := context.Background()
	author := &queries.UserView{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	itemID := uuid.New()
	itemView := &queries.ItemView{ID: itemID, Name: "Cordless Drill", Description: "18V", Available: true, OwnerID: uuid.New()}

	t.Run("eligible booker leaves a comment", func(t *testing.T) {
		uc, m := newItemUseCase()

		m.userFinder.On("FindByID", ctx, author.ID).Return(author, nil)
		m.viewRepo.On("FindByID", ctx, itemID).Return(itemView, nil)
		m.bookings.On("HasFinishedApprovedBooking", ctx, itemID, author.ID, itemTestNow).Return(true, nil)
		m.commentRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)

		view, err := uc.AddComment(ctx, reqdto.CreateCommentRequest{Text: "worked great"}, author.ID, itemID)
		require.NoError(t, err)
		assert.Equal(t, "worked great", view.Text)
		assert.Equal(t, "Alice", view.AuthorName)
		assert.Equal(t, itemTestNow, view.Created)
	})

	t.Run("no finished approved booking", func(t *testing.T) {
		uc, m := newItemUseCase()

		m.userFinder.On("FindByID", ctx, author.ID).Return(author, nil)
		m.viewRepo.On("FindByID", ctx, itemID).Return(itemView, nil)
		m.bookings.On("HasFinishedApprovedBooking", ctx, itemID, author.ID, itemTestNow).Return(false, nil)

		_, err := uc.AddComment(ctx, reqdto.CreateCommentRequest{Text: "never used it"}, author.ID, itemID)
		require.ErrorIs(t, err, errs.ErrCommentNotAllowed)
		m.commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("blank text is rejected", func(t *testing.T) {
		uc, m := newItemUseCase()

		m.userFinder.On("FindByID", ctx, author.ID).Return(author, nil)
		m.viewRepo.On("FindByID", ctx, itemID).Return(itemView, nil)
		m.bookings.On("HasFinishedApprovedBooking", ctx, itemID, author.ID, itemTestNow).Return(true, nil)

		_, err := uc.AddComment(ctx, reqdto.CreateCommentRequest{Text: "   "}, author.ID, itemID)
		require.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}
