package readstore

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewColumns = `
	b.id, b.start_at, b.end_at, b.status,
	b.booker_id, u.name AS booker_name,
	b.item_id, i.name AS item_name, i.owner_id`

const bookingViewFrom = `
	FROM bookings b
	JOIN users u ON u.id = b.booker_id
	JOIN items i ON i.id = b.item_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+bookingViewColumns+bookingViewFrom+` WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

// FindSnapshot returns the fields the approval rules need, joined to the
// item's owner so the caller performs no second fetch.
func (r *BookingReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*commands.BookingSnapshot, error) {
	var (
		snap   commands.BookingSnapshot
		status string
	)
	err := r.db.QueryRow(ctx,
		`SELECT b.id, b.start_at, b.end_at, b.status, b.booker_id, b.item_id, i.owner_id
		 FROM bookings b
		 JOIN items i ON i.id = b.item_id
		 WHERE b.id = $1`, id).
		Scan(&snap.ID, &snap.Start, &snap.End, &status, &snap.BookerID, &snap.ItemID, &snap.ItemOwnerID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking snapshot", err)
	}

	snap.Status, err = booking.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking status is invalid", err)
	}
	return &snap, nil
}

// ListForSubject is the single parameterized classifier query: the subject
// predicate comes from the perspective (booker id vs item owner id) and the
// window/status predicate from the filter, all evaluated against the one
// reference instant now. Ordering is start_at DESC with id DESC as the
// deterministic tie-break.
func (r *BookingReadStore) ListForSubject(
	ctx context.Context,
	perspective booking.Perspective,
	subjectID uuid.UUID,
	filter booking.ViewFilter,
	now time.Time,
) ([]*queries.BookingView, error) {
	query := `SELECT` + bookingViewColumns + bookingViewFrom + ` WHERE `
	if perspective == booking.AsOwner {
		query += `i.owner_id = $1`
	} else {
		query += `b.booker_id = $1`
	}

	args := []any{subjectID}
	switch filter {
	case booking.FilterCurrent:
		query += ` AND b.start_at <= $2 AND b.end_at >= $2`
		args = append(args, now)
	case booking.FilterPast:
		query += ` AND b.end_at < $2`
		args = append(args, now)
	case booking.FilterFuture:
		query += ` AND b.start_at > $2`
		args = append(args, now)
	case booking.FilterWaiting:
		query += ` AND b.status = $2`
		args = append(args, string(booking.StatusWaiting))
	case booking.FilterRejected:
		query += ` AND b.status = $2`
		args = append(args, string(booking.StatusRejected))
	}
	query += ` ORDER BY b.start_at DESC, b.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return result, nil
}

// LastForItems selects, per item, the booking with the greatest end_at among
// those concluded before now (tie-break id DESC). Items with no concluded
// booking are absent from the map.
func (r *BookingReadStore) LastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingSlotView, error) {
	return r.slotViewsByItem(ctx, itemIDs,
		`SELECT DISTINCT ON (b.item_id) b.item_id, b.id, b.booker_id, b.start_at, b.end_at
		 FROM bookings b
		 WHERE b.item_id = ANY($1) AND b.end_at < $2
		 ORDER BY b.item_id, b.end_at DESC, b.id DESC`, now)
}

// NextForItems selects, per item, the booking with the smallest start_at among
// those starting after now (tie-break id ASC).
func (r *BookingReadStore) NextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*queries.BookingSlotView, error) {
	return r.slotViewsByItem(ctx, itemIDs,
		`SELECT DISTINCT ON (b.item_id) b.item_id, b.id, b.booker_id, b.start_at, b.end_at
		 FROM bookings b
		 WHERE b.item_id = ANY($1) AND b.start_at > $2
		 ORDER BY b.item_id, b.start_at ASC, b.id ASC`, now)
}

func (r *BookingReadStore) slotViewsByItem(ctx context.Context, itemIDs []uuid.UUID, query string, now time.Time) (map[uuid.UUID]*queries.BookingSlotView, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]*queries.BookingSlotView{}, nil
	}

	rows, err := r.db.Query(ctx, query, itemIDs, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to aggregate bookings by item", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID]*queries.BookingSlotView, len(itemIDs))
	for rows.Next() {
		var (
			itemID uuid.UUID
			view   queries.BookingSlotView
		)
		if err := rows.Scan(&itemID, &view.ID, &view.BookerID, &view.Start, &view.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan aggregated booking row", err)
		}
		result[itemID] = &view
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read aggregated booking rows", err)
	}
	return result, nil
}

// HasFinishedApprovedBooking backs the comment eligibility rule.
func (r *BookingReadStore) HasFinishedApprovedBooking(ctx context.Context, itemID, userID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.item_id = $1 AND b.booker_id = $2 AND b.status = $3 AND b.end_at < $4
		)`, itemID, userID, string(booking.StatusApproved), now).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check finished bookings for user", err)
	}
	return exists, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var view queries.BookingView
	err := row.Scan(
		&view.ID, &view.Start, &view.End, &view.Status,
		&view.Booker.ID, &view.Booker.Name,
		&view.Item.ID, &view.Item.Name, &view.ItemOwnerID,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
