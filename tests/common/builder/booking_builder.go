//go:build unit || e2e

package builder

import (
	"time"

	dombooking "gearshare/internal/domain/booking"
	reqdto "gearshare/internal/handler/dto/request"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID         uuid.UUID
	Now        time.Time
	BookerID   uuid.UUID
	BookerName string
	ItemID     uuid.UUID
	ItemName   string
	OwnerID    uuid.UUID
	Start      time.Time
	End        time.Time
	Status     dombooking.Status
	Available  bool
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		Now:        now,
		BookerID:   uuid.New(),
		BookerName: "Test Booker",
		ItemID:     uuid.New(),
		ItemName:   "Cordless Drill",
		OwnerID:    uuid.New(),
		Start:      now.Add(24 * time.Hour),
		End:        now.Add(48 * time.Hour),
		Status:     dombooking.StatusWaiting,
		Available:  true,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(b.Now, b.BookerID, b.ItemID, b.Start, b.End)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  b.Start,
		End:    b.End,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		Start:       b.Start,
		End:         b.End,
		Status:      string(b.Status),
		Booker:      queries.UserRef{ID: b.BookerID, Name: b.BookerName},
		Item:        queries.ItemRef{ID: b.ItemID, Name: b.ItemName},
		ItemOwnerID: b.OwnerID,
	}
}

func (b *BookingBuilder) BuildSnapshot() *commands.BookingSnapshot {
	return &commands.BookingSnapshot{
		ID:          b.ID,
		Start:       b.Start,
		End:         b.End,
		Status:      b.Status,
		BookerID:    b.BookerID,
		ItemID:      b.ItemID,
		ItemOwnerID: b.OwnerID,
	}
}

func (b *BookingBuilder) BuildItemSnapshot() *commands.ItemSnapshot {
	return &commands.ItemSnapshot{
		ID:        b.ItemID,
		OwnerID:   b.OwnerID,
		Available: b.Available,
	}
}
