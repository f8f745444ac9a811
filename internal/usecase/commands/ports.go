package commands

import (
	"context"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads. They carry only the
// fields a rule needs; full views belong to the query side.

type BookingSnapshot struct {
	ID          uuid.UUID
	Start       time.Time
	End         time.Time
	Status      booking.Status
	BookerID    uuid.UUID
	ItemID      uuid.UUID
	ItemOwnerID uuid.UUID
}

type ItemSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Available bool
}

// Shared read-side consumers used by more than one command.

type UserExistenceRepo interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type UserViewFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error)
}
