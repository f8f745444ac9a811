package response

import (
	"gearshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:    v.ID,
		Name:  v.Name,
		Email: v.Email,
	}
}
