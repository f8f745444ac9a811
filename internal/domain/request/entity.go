package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// ItemRequest is a description-only ask for an item; items created in answer
// to it link back through their request id.
type ItemRequest struct {
	id          uuid.UUID
	description string
	requesterID uuid.UUID
	createdAt   time.Time
}

func NewItemRequest(requesterID uuid.UUID, description string, now time.Time) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	return &ItemRequest{
		id:          uuid.New(),
		description: description,
		requesterID: requesterID,
		createdAt:   now,
	}, nil
}

func (r *ItemRequest) ID() uuid.UUID          { return r.id }
func (r *ItemRequest) Description() string    { return r.description }
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }
func (r *ItemRequest) CreatedAt() time.Time   { return r.createdAt }
