package writerepo

import (
	"context"

	"gearshare/internal/domain/item"
	"gearshare/internal/infra/db"
)

type CommentRepository struct{}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{}
}

func (r *CommentRepository) Create(ctx context.Context, tx db.DBTX, c *item.Comment) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO comments (id, text, item_id, author_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID(), c.Text(), c.ItemID(), c.AuthorID(), c.CreatedAt())
	if err != nil {
		return wrapWriteErr("failed to create comment", err)
	}
	return nil
}
