package application

import (
	"context"

	"internhub/internal/common"
)

type Repository interface {
	// Create relies on the storage uniqueness constraint over
	// (internship_id, user_id) and returns a conflict error when the pair
	// already applied.
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	ListByUser(ctx context.Context, userID common.UUID) ([]Summary, error)
	ListAll(ctx context.Context) ([]Summary, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
}
