//go:build unit

package booking_test

import (
	"testing"
	"time"

	"gearshare/internal/domain/booking"
	"gearshare/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusWaiting, actual.Status())
		assert.True(t, actual.IsWaiting())
		assert.Equal(t, 24*time.Hour, actual.Slot().Duration())
	})

	t.Run("slot validation", func(t *testing.T) {
		runSlotCases(t, []slotCase{
			{
				name:   "start equals end",
				mutate: func(b *builder.BookingBuilder) { b.End = b.Start },
				errIs:  booking.ErrInvalidTimeSlot,
			},
			{
				name: "start after end",
				mutate: func(b *builder.BookingBuilder) {
					b.Start, b.End = b.End, b.Start
				},
				errIs: booking.ErrInvalidTimeSlot,
			},
			{
				name: "start in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.Start = b.Now.Add(-time.Hour)
				},
				errIs: booking.ErrSlotInPast,
			},
			{
				name: "whole slot in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.Start = b.Now.Add(-48 * time.Hour)
					b.End = b.Now.Add(-24 * time.Hour)
				},
				errIs: booking.ErrSlotInPast,
			},
			{
				name: "start exactly now is allowed",
				mutate: func(b *builder.BookingBuilder) {
					b.Start = b.Now
				},
			},
		})
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		first, err1 := b.BuildDomain()
		second, err2 := b.BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func TestDecide(t *testing.T) {
	t.Run("approve moves WAITING to APPROVED", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(true))
		assert.Equal(t, booking.StatusApproved, b.Status())
		assert.True(t, b.Status().IsTerminal())
	})

	t.Run("reject moves WAITING to REJECTED", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(false))
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("second decision fails", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(true))
		err = b.Decide(false)
		require.ErrorIs(t, err, booking.ErrAlreadyDecided)
		assert.Equal(t, booking.StatusApproved, b.Status())
	})

	t.Run("rejected booking cannot be approved later", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.Decide(false))
		require.ErrorIs(t, b.Decide(true), booking.ErrAlreadyDecided)
	})
}

func TestConcludedBy(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ended := booking.ReconstructBooking(uuid.New(), now.Add(-2*time.Hour), now.Add(-time.Hour), booking.StatusApproved, uuid.New(), uuid.New())
	running := booking.ReconstructBooking(uuid.New(), now.Add(-time.Hour), now.Add(time.Hour), booking.StatusApproved, uuid.New(), uuid.New())
	endingNow := booking.ReconstructBooking(uuid.New(), now.Add(-time.Hour), now, booking.StatusApproved, uuid.New(), uuid.New())

	assert.True(t, ended.ConcludedBy(now))
	assert.False(t, running.ConcludedBy(now))
	// end == now is not yet concluded
	assert.False(t, endingNow.ConcludedBy(now))
}

func TestParseViewFilter(t *testing.T) {
	cases := []struct {
		in      string
		want    booking.ViewFilter
		wantErr bool
	}{
		{in: "", want: booking.FilterAll},
		{in: "ALL", want: booking.FilterAll},
		{in: "current", want: booking.FilterCurrent},
		{in: "Past", want: booking.FilterPast},
		{in: "FUTURE", want: booking.FilterFuture},
		{in: "waiting", want: booking.FilterWaiting},
		{in: "REJECTED", want: booking.FilterRejected},
		{in: "APPROVED", wantErr: true},
		{in: "bogus", wantErr: true},
	}

	for _, c := range cases {
		t.Run("state "+c.in, func(t *testing.T) {
			got, err := booking.ParseViewFilter(c.in)
			if c.wantErr {
				require.ErrorIs(t, err, booking.ErrInvalidViewFilter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func runSlotCases(t *testing.T, cases []slotCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewBookingBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NoError(t, err)
				require.NotNil(t, actual)
			} else {
				require.Nil(t, actual)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
