package writerepo

import (
	"context"

	"gearshare/internal/domain/request"
	"gearshare/internal/infra/db"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.ItemRequest) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO requests (id, description, requester_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		req.ID(), req.Description(), req.RequesterID(), req.CreatedAt())
	if err != nil {
		return wrapWriteErr("failed to create item request", err)
	}
	return nil
}
