package item

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyComment = errors.New("comment text cannot be empty")

// Comment is feedback left by a user who has completed an approved booking on
// the item. The eligibility rule is checked by the command layer against the
// booking store; the text invariants live here.
type Comment struct {
	id        uuid.UUID
	text      string
	itemID    uuid.UUID
	authorID  uuid.UUID
	createdAt time.Time
}

func NewComment(itemID, authorID uuid.UUID, text string, now time.Time) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	return &Comment{
		id:        uuid.New(),
		text:      text,
		itemID:    itemID,
		authorID:  authorID,
		createdAt: now,
	}, nil
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) Text() string         { return c.text }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
