package response

import (
	"time"

	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemRequestResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	RequesterID uuid.UUID `json:"requesterId"`
	Created     time.Time `json:"created"`
}

type RequestAnswerResponse struct {
	ItemID  uuid.UUID `json:"itemId"`
	Name    string    `json:"name"`
	OwnerID uuid.UUID `json:"ownerId"`
}

type ItemRequestWithAnswersResponse struct {
	ItemRequestResponse
	Items []RequestAnswerResponse `json:"items"`
}

func FromRequestView(v *queries.RequestView) *ItemRequestResponse {
	return &ItemRequestResponse{
		ID:          v.ID,
		Description: v.Description,
		RequesterID: v.RequesterID,
		Created:     v.Created,
	}
}

func FromRequestViews(views []*queries.RequestView) []*ItemRequestResponse {
	result := make([]*ItemRequestResponse, len(views))
	for i, v := range views {
		result[i] = FromRequestView(v)
	}
	return result
}

func FromRequestWithAnswersView(v *queries.RequestWithAnswersView) *ItemRequestWithAnswersResponse {
	items := make([]RequestAnswerResponse, len(v.Items))
	for i, a := range v.Items {
		items[i] = RequestAnswerResponse{ItemID: a.ItemID, Name: a.Name, OwnerID: a.OwnerID}
	}
	return &ItemRequestWithAnswersResponse{
		ItemRequestResponse: *FromRequestView(&v.RequestView),
		Items:               items,
	}
}

func FromRequestWithAnswersViews(views []*queries.RequestWithAnswersView) []*ItemRequestWithAnswersResponse {
	result := make([]*ItemRequestWithAnswersResponse, len(views))
	for i, v := range views {
		result[i] = FromRequestWithAnswersView(v)
	}
	return result
}
