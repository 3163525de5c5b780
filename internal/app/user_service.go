package app

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/user"
)

type UserService struct {
	users  user.Repository
	logger *logrus.Logger
}

func NewUserService(users user.Repository, logger *logrus.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id common.UUID, update user.ProfileUpdate) (*user.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return nil, common.NewValidationError("invalid profile", map[string]string{"name": "name is required"})
	}
	update.Skills = dedupe(update.Skills)
	update.Keywords = dedupe(update.Keywords)
	updated, err := s.users.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", id).Info("profile updated")
	return updated, nil
}

const maxAttachmentBytes = 5 << 20

var allowedResumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

func (s *UserService) StoreResume(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	if err := validateAttachment(attachment, allowedResumeTypes, "resume"); err != nil {
		return err
	}
	if err := s.users.StoreResume(ctx, id, attachment); err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("resume stored")
	return nil
}

func (s *UserService) StorePicture(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	if err := validateAttachment(attachment, allowedImageTypes, "picture"); err != nil {
		return err
	}
	if err := s.users.StorePicture(ctx, id, attachment); err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("profile picture stored")
	return nil
}

func (s *UserService) GetResume(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	return s.users.GetResume(ctx, id)
}

func (s *UserService) GetPicture(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	return s.users.GetPicture(ctx, id)
}

// List returns users registered within the inclusive bounds; a nil bound is
// open-ended.
func (s *UserService) List(ctx context.Context, from, to *time.Time) ([]user.User, error) {
	items, err := s.users.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []user.User{}
	}
	return items, nil
}

// Delete removes the account; its applications go with it via the storage
// cascade.
func (s *UserService) Delete(ctx context.Context, id common.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("user_id", id).Info("user deleted")
	return nil
}

func validateAttachment(attachment user.Attachment, allowed map[string]bool, field string) error {
	fields := map[string]string{}
	if len(attachment.Data) == 0 {
		fields[field] = "file is empty"
	}
	if len(attachment.Data) > maxAttachmentBytes {
		fields[field] = "file exceeds the 5 MB limit"
	}
	if !allowed[attachment.ContentType] {
		fields[field] = "unsupported file type"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid upload", fields)
	}
	return nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" || seen[strings.ToLower(trimmed)] {
			continue
		}
		seen[strings.ToLower(trimmed)] = true
		out = append(out, trimmed)
	}
	return out
}
