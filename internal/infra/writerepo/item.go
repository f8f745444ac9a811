package writerepo

import (
	"context"

	"gearshare/internal/domain/item"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
)

type ItemRepository struct{}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{}
}

func (r *ItemRepository) Create(ctx context.Context, tx db.DBTX, i *item.Item) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO items (id, name, description, available, owner_id, request_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		i.ID(), i.Name(), i.Description(), i.Available(), i.OwnerID(),
		pgconv.UUIDPtrToPgtype(i.RequestID()))
	if err != nil {
		return wrapWriteErr("failed to create item", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, tx db.DBTX, i *item.Item) error {
	tag, err := tx.Exec(ctx,
		`UPDATE items SET name = $1, description = $2, available = $3 WHERE id = $4`,
		i.Name(), i.Description(), i.Available(), i.ID())
	if err != nil {
		return wrapWriteErr("failed to update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found for update", nil, infra.KindNotFound)
	}
	return nil
}
