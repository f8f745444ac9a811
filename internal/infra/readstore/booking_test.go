//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingDB captures the statement a store builds and fails the call, so
// tests can assert on predicate construction without a database.
type recordingDB struct {
	sql  string
	args []any
	err  error
}

func (r *recordingDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.sql, r.args = sql, args
	return pgconn.CommandTag{}, r.err
}

func (r *recordingDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r.sql, r.args = sql, args
	return nil, r.err
}

func (r *recordingDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r.sql, r.args = sql, args
	return errRow{r.err}
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func TestListForSubjectPredicates(t *testing.T) {
	ctx := context.Background()
	subjectID := uuid.New()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		perspective booking.Perspective
		filter      booking.ViewFilter
		wantClause  string
		wantArgs    []any
	}{
		{
			name:        "booker all",
			perspective: booking.AsBooker,
			filter:      booking.FilterAll,
			wantClause:  `b.booker_id = $1`,
			wantArgs:    []any{subjectID},
		},
		{
			name:        "owner all",
			perspective: booking.AsOwner,
			filter:      booking.FilterAll,
			wantClause:  `i.owner_id = $1`,
			wantArgs:    []any{subjectID},
		},
		{
			name:        "current brackets the reference instant",
			perspective: booking.AsBooker,
			filter:      booking.FilterCurrent,
			wantClause:  `b.start_at <= $2 AND b.end_at >= $2`,
			wantArgs:    []any{subjectID, now},
		},
		{
			name:        "past ends strictly before now",
			perspective: booking.AsBooker,
			filter:      booking.FilterPast,
			wantClause:  `b.end_at < $2`,
			wantArgs:    []any{subjectID, now},
		},
		{
			name:        "future starts strictly after now",
			perspective: booking.AsBooker,
			filter:      booking.FilterFuture,
			wantClause:  `b.start_at > $2`,
			wantArgs:    []any{subjectID, now},
		},
		{
			name:        "waiting matches status",
			perspective: booking.AsOwner,
			filter:      booking.FilterWaiting,
			wantClause:  `b.status = $2`,
			wantArgs:    []any{subjectID, "WAITING"},
		},
		{
			name:        "rejected matches status",
			perspective: booking.AsOwner,
			filter:      booking.FilterRejected,
			wantClause:  `b.status = $2`,
			wantArgs:    []any{subjectID, "REJECTED"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &recordingDB{err: errors.New("probe")}
			store := readstore.NewBookingReadStore(fake)

			_, err := store.ListForSubject(ctx, tt.perspective, subjectID, tt.filter, now)
			require.Error(t, err)

			assert.Contains(t, fake.sql, tt.wantClause)
			assert.Contains(t, fake.sql, `ORDER BY b.start_at DESC, b.id DESC`)
			assert.Equal(t, tt.wantArgs, fake.args)
		})
	}
}

func TestSlotQueriesPredicates(t *testing.T) {
	ctx := context.Background()
	itemIDs := []uuid.UUID{uuid.New(), uuid.New()}
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("last picks the latest concluded booking per item", func(t *testing.T) {
		fake := &recordingDB{err: errors.New("probe")}
		store := readstore.NewBookingReadStore(fake)

		_, err := store.LastForItems(ctx, itemIDs, now)
		require.Error(t, err)

		assert.Contains(t, fake.sql, `DISTINCT ON (b.item_id)`)
		assert.Contains(t, fake.sql, `b.end_at < $2`)
		assert.Contains(t, fake.sql, `ORDER BY b.item_id, b.end_at DESC, b.id DESC`)
		assert.Equal(t, []any{itemIDs, now}, fake.args)
	})

	t.Run("next picks the earliest upcoming booking per item", func(t *testing.T) {
		fake := &recordingDB{err: errors.New("probe")}
		store := readstore.NewBookingReadStore(fake)

		_, err := store.NextForItems(ctx, itemIDs, now)
		require.Error(t, err)

		assert.Contains(t, fake.sql, `b.start_at > $2`)
		assert.Contains(t, fake.sql, `ORDER BY b.item_id, b.start_at ASC, b.id ASC`)
	})

	t.Run("empty input never touches the database", func(t *testing.T) {
		fake := &recordingDB{err: errors.New("probe")}
		store := readstore.NewBookingReadStore(fake)

		result, err := store.LastForItems(ctx, nil, now)
		require.NoError(t, err)
		assert.Empty(t, result)
		assert.Empty(t, fake.sql)
	})
}
