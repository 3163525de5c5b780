package admin

import (
	"context"
	"time"

	"internhub/internal/common"
)

type Admin struct {
	ID           common.UUID `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Email        string      `json:"email"`
	CreatedAt    time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, account Admin) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id common.UUID) (*Admin, error)
}
