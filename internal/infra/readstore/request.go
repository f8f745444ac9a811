package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const requestViewColumns = ` r.id, r.description, r.requester_id, r.created_at `

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(db db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: db}
}

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	view, err := scanRequestView(r.db.QueryRow(ctx,
		`SELECT`+requestViewColumns+`FROM requests r WHERE r.id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item request by ID", err)
	}
	return view, nil
}

// ListByRequester returns the user's own requests, newest first.
func (r *RequestReadStore) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]*queries.RequestView, error) {
	return r.list(ctx,
		`SELECT`+requestViewColumns+`FROM requests r WHERE r.requester_id = $1 ORDER BY r.created_at DESC, r.id DESC`,
		requesterID)
}

// ListOthers returns every other user's requests, newest first.
func (r *RequestReadStore) ListOthers(ctx context.Context, requesterID uuid.UUID) ([]*queries.RequestView, error) {
	return r.list(ctx,
		`SELECT`+requestViewColumns+`FROM requests r WHERE r.requester_id <> $1 ORDER BY r.created_at DESC, r.id DESC`,
		requesterID)
}

func (r *RequestReadStore) list(ctx context.Context, query string, args ...any) ([]*queries.RequestView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list item requests", err)
	}
	defer rows.Close()

	var result []*queries.RequestView
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan item request row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read item request rows", err)
	}
	return result, nil
}

func scanRequestView(row pgx.Row) (*queries.RequestView, error) {
	var view queries.RequestView
	err := row.Scan(&view.ID, &view.Description, &view.RequesterID, &view.Created)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
