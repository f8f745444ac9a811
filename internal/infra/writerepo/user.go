package writerepo

import (
	"context"

	"gearshare/internal/domain/user"
	"gearshare/internal/infra"
	"gearshare/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
		u.ID(), u.Name(), u.Email().String())
	if err != nil {
		return wrapWriteErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, tx db.DBTX, u *user.User) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET name = $1, email = $2 WHERE id = $3`,
		u.Name(), u.Email().String(), u.ID())
	if err != nil {
		return wrapWriteErr("failed to update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found for update", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found for delete", nil, infra.KindNotFound)
	}
	return nil
}
