package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrSlotInPast      = errors.New("time slot must not start in the past")
	ErrAlreadyDecided  = errors.New("booking is no longer waiting for a decision")
)

// TimeSlot is the half-open-in-intent [start, end] interval of a booking.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

// NewTimeSlot validates the slot against the reference instant now: the slot
// must be well-formed (start < end), start in the present or future, and end
// strictly in the future.
func NewTimeSlot(now, start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	if start.Before(now) || !end.After(now) {
		return TimeSlot{}, ErrSlotInPast
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time        { return ts.start }
func (ts TimeSlot) End() time.Time          { return ts.end }
func (ts TimeSlot) Duration() time.Duration { return ts.end.Sub(ts.start) }

type Booking struct {
	id       uuid.UUID
	slot     TimeSlot
	status   Status
	bookerID uuid.UUID
	itemID   uuid.UUID
}

// NewBooking creates a booking in the WAITING state. Self-booking and item
// availability are cross-entity rules checked by the command layer; the slot
// invariants live here.
func NewBooking(now time.Time, bookerID, itemID uuid.UUID, start, end time.Time) (*Booking, error) {
	slot, err := NewTimeSlot(now, start, end)
	if err != nil {
		return nil, err
	}

	return &Booking{
		id:       uuid.New(),
		slot:     slot,
		status:   StatusWaiting,
		bookerID: bookerID,
		itemID:   itemID,
	}, nil
}

func ReconstructBooking(id uuid.UUID, start, end time.Time, status Status, bookerID, itemID uuid.UUID) *Booking {
	return &Booking{
		id:       id,
		slot:     TimeSlot{start: start, end: end},
		status:   status,
		bookerID: bookerID,
		itemID:   itemID,
	}
}

// Decide is the sole status mutator. It moves a WAITING booking to APPROVED or
// REJECTED and fails on any booking that has already left WAITING.
func (b *Booking) Decide(approved bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if approved {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) Slot() TimeSlot      { return b.slot }
func (b *Booking) Start() time.Time    { return b.slot.start }
func (b *Booking) End() time.Time      { return b.slot.end }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }

func (b *Booking) IsWaiting() bool { return b.status == StatusWaiting }

// ConcludedBy reports whether the booking finished before the reference instant.
func (b *Booking) ConcludedBy(now time.Time) bool { return b.slot.end.Before(now) }
