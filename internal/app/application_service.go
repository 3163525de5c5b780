package app

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/application"
	"internhub/internal/domain/internship"
	"internhub/internal/domain/user"
)

type ApplicationService struct {
	repo        application.Repository
	internships internship.Repository
	users       user.Repository
	logger      *logrus.Logger
}

func NewApplicationService(repo application.Repository, internships internship.Repository, users user.Repository, logger *logrus.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, internships: internships, users: users, logger: logger}
}

// Apply creates the one allowed application for a (user, internship) pair.
// Duplicate detection is left entirely to the storage constraint so two
// concurrent requests cannot both pass a pre-check.
func (s *ApplicationService) Apply(ctx context.Context, internshipID, userID common.UUID, coverLetter string) (*application.Application, error) {
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.Resume.Filename == "" {
		return nil, common.NewError(common.CodeValidation, "a resume is required before applying", nil)
	}
	item, err := s.internships.GetByID(ctx, internshipID)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	created, err := s.repo.Create(ctx, application.Application{
		InternshipID: internshipID,
		UserID:       userID,
		Status:       application.StatusPending,
		CoverLetter:  strings.TrimSpace(coverLetter),
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.IncrementApplicationCount(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Warn("failed to bump application count")
	}
	s.logger.WithFields(logrus.Fields{"application_id": created.ID, "internship_id": internshipID, "user_id": userID}).Info("application created")
	return created, nil
}

func (s *ApplicationService) ListForUser(ctx context.Context, userID common.UUID) ([]application.Summary, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.Summary{}
	}
	return items, nil
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]application.Summary, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.Summary{}
	}
	return items, nil
}

// UpdateStatus overwrites the status with any of the four literals. There is
// deliberately no transition graph: the console may move an application from
// accepted back to pending.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(status))))
	switch normalized {
	case application.StatusPending, application.StatusReviewed, application.StatusAccepted, application.StatusRejected:
	default:
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, reviewed, accepted, or rejected"})
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	updated, err := s.repo.UpdateStatus(ctx, id, normalized)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"application_id": id, "status": normalized}).Info("application status updated")
	return updated, nil
}
