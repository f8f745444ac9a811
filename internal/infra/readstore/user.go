package readstore

import (
	"context"

	"gearshare/internal/infra"
	"gearshare/internal/infra/db"
	"gearshare/internal/pkg/pgconv"
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var view queries.UserView
	err := r.db.QueryRow(ctx,
		`SELECT u.id, u.name, u.email FROM users u WHERE u.id = $1`, id).
		Scan(&view.ID, &view.Name, &view.Email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &view, nil
}

func (r *UserReadStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users u WHERE u.id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserReadStore) EmailInUse(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users u WHERE u.email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check email usage", err)
	}
	return exists, nil
}
