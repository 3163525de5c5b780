package internship

import (
	"context"

	"internhub/internal/common"
)

// Filter narrows a listing query. Zero-valued text fields and nil salary
// bounds impose no constraint; OnlyActive restricts to visible postings.
type Filter struct {
	Search     string
	Location   string
	Domain     string
	Position   string
	MinSalary  *int
	MaxSalary  *int
	OnlyActive bool
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, item Internship) (*Internship, error)
	CreateBatch(ctx context.Context, items []Internship) ([]Internship, error)
	Update(ctx context.Context, item Internship) (*Internship, error)
	GetByID(ctx context.Context, id common.UUID) (*Internship, error)
	SetActive(ctx context.Context, id common.UUID, active bool) (*Internship, error)
	List(ctx context.Context, filter Filter) ([]Internship, int, error)
	Delete(ctx context.Context, id common.UUID) error
}
