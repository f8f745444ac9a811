package item

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName        = errors.New("item name cannot be empty")
	ErrEmptyDescription = errors.New("item description cannot be empty")
)

type Item struct {
	id          uuid.UUID
	name        string
	description string
	available   bool
	ownerID     uuid.UUID
	requestID   *uuid.UUID
}

func NewItem(ownerID uuid.UUID, name, description string, available bool, requestID *uuid.UUID) (*Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	return &Item{
		id:          uuid.New(),
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}, nil
}

func ReconstructItem(id uuid.UUID, name, description string, available bool, ownerID uuid.UUID, requestID *uuid.UUID) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		available:   available,
		ownerID:     ownerID,
		requestID:   requestID,
	}
}

// ApplyPatch updates the mutable fields; blank strings leave the field as is.
func (i *Item) ApplyPatch(name, description *string, available *bool) {
	if name != nil && strings.TrimSpace(*name) != "" {
		i.name = strings.TrimSpace(*name)
	}
	if description != nil && strings.TrimSpace(*description) != "" {
		i.description = strings.TrimSpace(*description)
	}
	if available != nil {
		i.available = *available
	}
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool { return i.ownerID == userID }

func (i *Item) ID() uuid.UUID         { return i.id }
func (i *Item) Name() string          { return i.name }
func (i *Item) Description() string   { return i.description }
func (i *Item) Available() bool       { return i.available }
func (i *Item) OwnerID() uuid.UUID    { return i.ownerID }
func (i *Item) RequestID() *uuid.UUID { return i.requestID }
