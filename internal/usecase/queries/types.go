package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingView struct {
	ID     uuid.UUID `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Booker UserRef   `json:"booker"`
	Item   ItemRef   `json:"item"`

	// ItemOwnerID backs the access guard and is never serialized.
	ItemOwnerID uuid.UUID `json:"-"`
}

// BookingSlotView is the reduced shape used when a booking enriches an item
// listing (the original exposes only id and booker there).
type BookingSlotView struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type ItemView struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}

// ItemDetailView carries the owner-only temporal facts: LastBooking and
// NextBooking stay nil (and are omitted from JSON) for non-owners.
type ItemDetailView struct {
	ItemView
	LastBooking *BookingSlotView `json:"lastBooking,omitempty"`
	NextBooking *BookingSlotView `json:"nextBooking,omitempty"`
	Comments    []CommentView    `json:"comments"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type UserView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type RequestView struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	RequesterID uuid.UUID `json:"requesterId"`
	Created     time.Time `json:"created"`
}

// RequestAnswer is an item offered in response to an item request.
type RequestAnswer struct {
	ItemID  uuid.UUID `json:"itemId"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"ownerId"`
}

type RequestWithAnswersView struct {
	RequestView
	Items []RequestAnswer `json:"items"`
}
