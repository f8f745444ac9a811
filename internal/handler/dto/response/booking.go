package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type ItemRefResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingResponse struct {
	ID     uuid.UUID       `json:"id"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end"`
	Status string          `json:"status"`
	Booker UserRefResponse `json:"booker"`
	Item   ItemRefResponse `json:"item"`
}

// BookingSlotResponse is the reduced booking shape embedded in item views.
type BookingSlotResponse struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: v.Status,
		Booker: UserRefResponse{ID: v.Booker.ID, Name: v.Booker.Name},
		Item:   ItemRefResponse{ID: v.Item.ID, Name: v.Item.Name},
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	return result
}

func fromBookingSlotView(v *queries.BookingSlotView) *BookingSlotResponse {
	if v == nil {
		return nil
	}
	return &BookingSlotResponse{
		ID:       v.ID,
		BookerID: v.BookerID,
		Start:    v.Start,
		End:      v.End,
	}
}
