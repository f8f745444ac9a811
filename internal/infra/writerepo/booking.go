package writerepo

import (
	"context"

	"gearshare/internal/domain/booking"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO bookings (id, start_at, end_at, status, booker_id, item_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID(), b.Start(), b.End(), string(b.Status()), b.BookerID(), b.ItemID())
	if err != nil {
		return wrapWriteErr("failed to create booking", err)
	}
	return nil
}

// UpdateStatusIfWaiting is the atomic conditional transition out of WAITING.
// Concurrent approval attempts race on the WHERE clause; exactly one caller
// observes a single affected row, the rest get zero and must treat the
// booking as already decided.
func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, tx db.DBTX, id uuid.UUID, status booking.Status) (int64, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`,
		string(status), id, string(booking.StatusWaiting))
	if err != nil {
		return 0, wrapWriteErr("failed to update booking status", err)
	}
	return tag.RowsAffected(), nil
}
