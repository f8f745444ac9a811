package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/commands"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const itemViewColumns = ` i.id, i.name, i.description, i.available, i.owner_id, i.request_id `

type ItemReadStore struct {
	db db.DBTX
}

func NewItemReadStore(db db.DBTX) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	view, err := scanItemView(r.db.QueryRow(ctx,
		`SELECT`+itemViewColumns+`FROM items i WHERE i.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}
	return view, nil
}

func (r *ItemReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*commands.ItemSnapshot, error) {
	var snap commands.ItemSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT i.id, i.owner_id, i.available FROM items i WHERE i.id = $1`, id).
		Scan(&snap.ID, &snap.OwnerID, &snap.Available)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item snapshot", err)
	}
	return &snap, nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+itemViewColumns+`FROM items i WHERE i.owner_id = $1 ORDER BY i.name, i.id`, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items by owner", err)
	}
	defer rows.Close()
	return collectItemViews(rows)
}

// Search matches available items by case-insensitive substring over name and
// description.
func (r *ItemReadStore) Search(ctx context.Context, text string) ([]*queries.ItemView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT`+itemViewColumns+`
		 FROM items i
		 WHERE i.available = TRUE
		   AND (i.name ILIKE '%' || $1 || '%' OR i.description ILIKE '%' || $1 || '%')
		 ORDER BY i.name, i.id`, text)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search items", err)
	}
	defer rows.Close()
	return collectItemViews(rows)
}

func (r *ItemReadStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM items i WHERE i.owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count items by owner", err)
	}
	return count, nil
}

// AnswersForRequests returns the items created in response to each request,
// grouped by request id.
func (r *ItemReadStore) AnswersForRequests(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]queries.RequestAnswer, error) {
	result := make(map[uuid.UUID][]queries.RequestAnswer, len(requestIDs))
	if len(requestIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT i.request_id, i.id, i.name, i.owner_id
		 FROM items i
		 WHERE i.request_id = ANY($1)
		 ORDER BY i.name, i.id`, requestIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find items by request IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			requestID uuid.UUID
			answer    queries.RequestAnswer
		)
		if err := rows.Scan(&requestID, &answer.ItemID, &answer.Name, &answer.OwnerID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request answer row", err)
		}
		result[requestID] = append(result[requestID], answer)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read request answer rows", err)
	}
	return result, nil
}

// CommentsForItems returns comments with author names, grouped by item id.
func (r *ItemReadStore) CommentsForItems(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]queries.CommentView, error) {
	result := make(map[uuid.UUID][]queries.CommentView, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT c.item_id, c.id, c.text, u.name, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.author_id
		 WHERE c.item_id = ANY($1)
		 ORDER BY c.created_at DESC, c.id DESC`, itemIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find comments by item IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID uuid.UUID
			view   queries.CommentView
		)
		if err := rows.Scan(&itemID, &view.ID, &view.Text, &view.AuthorName, &view.Created); err != nil {
			return nil, infra.WrapRepoErr("failed to scan comment row", err)
		}
		result[itemID] = append(result[itemID], view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read comment rows", err)
	}
	return result, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var (
		view      queries.ItemView
		requestID pgtype.UUID
	)
	err := row.Scan(&view.ID, &view.Name, &view.Description, &view.Available, &view.OwnerID, &requestID)
	if err != nil {
		return nil, err
	}
	view.RequestID = pgconv.UUIDPtrFromPgtype(requestID)
	return &view, nil
}

func collectItemViews(rows pgx.Rows) ([]*queries.ItemView, error) {
	var result []*queries.ItemView
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read item rows", err)
	}
	return result, nil
}
