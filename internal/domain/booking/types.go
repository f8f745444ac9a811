package booking

import (
	"errors"
	"strings"
)

// Status is the booking state machine: WAITING is the initial state, APPROVED
// and REJECTED are terminal. The only transition is WAITING -> APPROVED|REJECTED,
// taken at most once through Booking.Decide.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

var ErrInvalidStatus = errors.New("invalid booking status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusWaiting, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ViewFilter buckets bookings into the temporal/status views a listing can ask
// for. There is no APPROVED-only filter; approved bookings surface through
// ALL/CURRENT/PAST/FUTURE.
type ViewFilter string

const (
	FilterAll      ViewFilter = "ALL"
	FilterCurrent  ViewFilter = "CURRENT"
	FilterPast     ViewFilter = "PAST"
	FilterFuture   ViewFilter = "FUTURE"
	FilterWaiting  ViewFilter = "WAITING"
	FilterRejected ViewFilter = "REJECTED"
)

var ErrInvalidViewFilter = errors.New("invalid booking view filter")

// ParseViewFilter accepts the wire form of a filter; an empty value means ALL.
func ParseViewFilter(s string) (ViewFilter, error) {
	if s == "" {
		return FilterAll, nil
	}
	switch ViewFilter(strings.ToUpper(s)) {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return ViewFilter(strings.ToUpper(s)), nil
	default:
		return "", ErrInvalidViewFilter
	}
}

// Perspective selects whose bookings a listing covers: the ones the user
// requested, or the ones on items the user owns.
type Perspective string

const (
	AsBooker Perspective = "booker"
	AsOwner  Perspective = "owner"
)
