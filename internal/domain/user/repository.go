package user

import (
	"context"
	"time"

	"internhub/internal/common"
)

type ProfileUpdate struct {
	Name      string
	Phone     string
	Education []Education
	Skills    []string
	Keywords  []string
}

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, id common.UUID, update ProfileUpdate) (*User, error)
	UpdatePasswordHash(ctx context.Context, id common.UUID, hash string) error
	StoreResume(ctx context.Context, id common.UUID, attachment Attachment) error
	StorePicture(ctx context.Context, id common.UUID, attachment Attachment) error
	GetResume(ctx context.Context, id common.UUID) (*Attachment, error)
	GetPicture(ctx context.Context, id common.UUID) (*Attachment, error)
	IncrementApplicationCount(ctx context.Context, id common.UUID) error
	List(ctx context.Context, from, to *time.Time) ([]User, error)
	Delete(ctx context.Context, id common.UUID) error
}
