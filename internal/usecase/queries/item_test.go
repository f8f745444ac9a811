//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"gearshare/internal/infra"
	"gearshare/internal/pkg/clock"
	"gearshare/internal/pkg/errs"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockItemViewRepo struct{ mock.Mock }

func (m *mockItemViewRepo) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	args := m.Called(ctx, id)
	if view := args.Get(0); view != nil {
		return view.(*queries.ItemView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemViewRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	args := m.Called(ctx, ownerID)
	if views := args.Get(0); views != nil {
		return views.([]*queries.ItemView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemViewRepo) Search(ctx context.Context, text string) ([]*queries.ItemView, error) {
	args := m.Called(ctx, text)
	if views := args.Get(0); views != nil {
		return views.([]*queries.ItemView), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemViewRepo) CommentsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]queries.CommentView, error) {
	args := m.Called(ctx, itemIDs)
	return args.Get(0).(map[uuid.UUID][]queries.CommentView), args.Error(1)
}

type mockBookingSlotRepo struct{ mock.Mock }

func (m *mockBookingSlotRepo) LastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingSlotView, error) {
	args := m.Called(ctx, itemIDs, now)
	return args.Get(0).(map[uuid.UUID]*queries.BookingSlotView), args.Error(1)
}

func (m *mockBookingSlotRepo) NextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingSlotView, error) {
	args := m.Called(ctx, itemIDs, now)
	return args.Get(0).(map[uuid.UUID]*queries.BookingSlotView), args.Error(1)
}

type itemQueriesMocks struct {
	repo     *mockItemViewRepo
	bookings *mockBookingSlotRepo
	clock    *clock.MockClock
}

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newItemQueries() (queries.ItemQueries, *itemQueriesMocks) {
	m := &itemQueriesMocks{
		repo:     &mockItemViewRepo{},
		bookings: &mockBookingSlotRepo{},
		clock:    clock.NewMockClock(testNow),
	}
	return queries.NewItemQueries(m.repo, m.bookings, m.clock), m
}

func notFoundRepoErr() error {
	return infra.WrapRepoErr("not found", nil, infra.KindNotFound)
}

func itemView(ownerID uuid.UUID) *queries.ItemView {
	return &queries.ItemView{
		ID:          uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V with two batteries",
		Available:   true,
		OwnerID:     ownerID,
	}
}

func TestItemGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("owner sees last and next booking", func(t *testing.T) {
		owner := uuid.New()
		item := itemView(owner)
		q, m := newItemQueries()

		last := &queries.BookingSlotView{ID: uuid.New(), BookerID: uuid.New(), Start: testNow.Add(-48 * time.Hour), End: testNow.Add(-24 * time.Hour)}
		next := &queries.BookingSlotView{ID: uuid.New(), BookerID: uuid.New(), Start: testNow.Add(24 * time.Hour), End: testNow.Add(48 * time.Hour)}

		m.repo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.repo.On("CommentsForItems", ctx, []uuid.UUID{item.ID}).Return(map[uuid.UUID][]queries.CommentView{}, nil)
		m.bookings.On("LastForItems", ctx, []uuid.UUID{item.ID}, testNow).Return(map[uuid.UUID]*queries.BookingSlotView{item.ID: last}, nil)
		m.bookings.On("NextForItems", ctx, []uuid.UUID{item.ID}, testNow).Return(map[uuid.UUID]*queries.BookingSlotView{item.ID: next}, nil)

		view, err := q.GetByID(ctx, owner, item.ID)
		require.NoError(t, err)
		assert.Equal(t, last, view.LastBooking)
		assert.Equal(t, next, view.NextBooking)
		assert.NotNil(t, view.Comments)
		assert.Empty(t, view.Comments)
	})

	t.Run("non-owner never sees the temporal facts", func(t *testing.T) {
		item := itemView(uuid.New())
		q, m := newItemQueries()

		m.repo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.repo.On("CommentsForItems", ctx, []uuid.UUID{item.ID}).Return(map[uuid.UUID][]queries.CommentView{}, nil)

		view, err := q.GetByID(ctx, uuid.New(), item.ID)
		require.NoError(t, err)
		assert.Nil(t, view.LastBooking)
		assert.Nil(t, view.NextBooking)
		m.bookings.AssertNotCalled(t, "LastForItems", mock.Anything, mock.Anything, mock.Anything)
		m.bookings.AssertNotCalled(t, "NextForItems", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("comments are attached for everyone", func(t *testing.T) {
		item := itemView(uuid.New())
		q, m := newItemQueries()

		comments := []queries.CommentView{{ID: uuid.New(), Text: "worked great", AuthorName: "Alice", Created: testNow.Add(-time.Hour)}}
		m.repo.On("FindByID", ctx, item.ID).Return(item, nil)
		m.repo.On("CommentsForItems", ctx, []uuid.UUID{item.ID}).Return(map[uuid.UUID][]queries.CommentView{item.ID: comments}, nil)

		view, err := q.GetByID(ctx, uuid.New(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, comments, view.Comments)
	})

	t.Run("unknown item", func(t *testing.T) {
		q, m := newItemQueries()
		id := uuid.New()

		m.repo.On("FindByID", ctx, id).Return(nil, notFoundRepoErr())

		_, err := q.GetByID(ctx, uuid.New(), id)
		require.ErrorIs(t, err, errs.ErrItemNotFound)
	})
}

func TestItemListByOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("batched enrichment covers every item", func(t *testing.T) {
		owner := uuid.New()
		first := itemView(owner)
		second := itemView(owner)
		q, m := newItemQueries()

		next := &queries.BookingSlotView{ID: uuid.New(), BookerID: uuid.New(), Start: testNow.Add(time.Hour), End: testNow.Add(2 * time.Hour)}
		ids := []uuid.UUID{first.ID, second.ID}

		m.repo.On("ListByOwner", ctx, owner).Return([]*queries.ItemView{first, second}, nil)
		m.repo.On("CommentsForItems", ctx, ids).Return(map[uuid.UUID][]queries.CommentView{}, nil)
		m.bookings.On("LastForItems", ctx, ids, testNow).Return(map[uuid.UUID]*queries.BookingSlotView{}, nil)
		m.bookings.On("NextForItems", ctx, ids, testNow).Return(map[uuid.UUID]*queries.BookingSlotView{second.ID: next}, nil)

		views, err := q.ListByOwner(ctx, owner)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Nil(t, views[0].NextBooking)
		assert.Equal(t, next, views[1].NextBooking)
		// one aggregation call regardless of item count
		m.bookings.AssertNumberOfCalls(t, "LastForItems", 1)
		m.bookings.AssertNumberOfCalls(t, "NextForItems", 1)
	})
}

func TestItemSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text short-circuits to empty", func(t *testing.T) {
		q, m := newItemQueries()

		views, err := q.Search(ctx, "   ")
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
		m.repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("text is forwarded verbatim", func(t *testing.T) {
		q, m := newItemQueries()
		item := itemView(uuid.New())

		m.repo.On("Search", ctx, "drill").Return([]*queries.ItemView{item}, nil)

		views, err := q.Search(ctx, "drill")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, item.ID, views[0].ID)
	})
}
