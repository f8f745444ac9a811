package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingSlotResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingSlotResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse    `json:"comments"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		OwnerID:     v.OwnerID,
		RequestID:   v.RequestID,
	}
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	result := make([]*ItemResponse, len(views))
	for i, v := range views {
		result[i] = FromItemView(v)
	}
	return result
}

func FromItemDetailView(v *queries.ItemDetailView) *ItemDetailResponse {
	return &ItemDetailResponse{
		ItemResponse: *FromItemView(&v.ItemView),
		LastBooking:  fromBookingSlotView(v.LastBooking),
		NextBooking:  fromBookingSlotView(v.NextBooking),
		Comments:     FromCommentViews(v.Comments),
	}
}

func FromItemDetailViews(views []*queries.ItemDetailView) []*ItemDetailResponse {
	result := make([]*ItemDetailResponse, len(views))
	for i, v := range views {
		result[i] = FromItemDetailView(v)
	}
	return result
}

func FromCommentView(v *queries.CommentView) *CommentResponse {
	return &CommentResponse{
		ID:         v.ID,
		Text:       v.Text,
		AuthorName: v.AuthorName,
		Created:    v.Created,
	}
}

func FromCommentViews(views []queries.CommentView) []CommentResponse {
	result := make([]CommentResponse, len(views))
	for i := range views {
		result[i] = *FromCommentView(&views[i])
	}
	return result
}
