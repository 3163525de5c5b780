package app

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/internship"
)

type InternshipService struct {
	repo   internship.Repository
	logger *logrus.Logger
}

func NewInternshipService(repo internship.Repository, logger *logrus.Logger) *InternshipService {
	return &InternshipService{repo: repo, logger: logger}
}

// ListQuery is the parsed query-string filter. Page is 1-based.
type ListQuery struct {
	Search    string
	Location  string
	Domain    string
	Position  string
	MinSalary *int
	MaxSalary *int
	Page      int
	Limit     int
}

type Pagination struct {
	Current int `json:"current"`
	Pages   int `json:"pages"`
	Total   int `json:"total"`
}

type ListResult struct {
	Items      []internship.Internship `json:"internships"`
	Pagination Pagination              `json:"pagination"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// List serves the public catalog: active postings only.
func (s *InternshipService) List(ctx context.Context, query ListQuery) (*ListResult, error) {
	return s.list(ctx, query, true)
}

// ListAdmin is the console view: same filters, no visibility restriction.
func (s *InternshipService) ListAdmin(ctx context.Context, query ListQuery) (*ListResult, error) {
	return s.list(ctx, query, false)
}

func (s *InternshipService) list(ctx context.Context, query ListQuery, onlyActive bool) (*ListResult, error) {
	// A zero page or limit means the query string omitted it; explicit
	// non-positive values are rejected at the HTTP layer.
	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = defaultPageSize
	}
	fields := map[string]string{}
	if query.Page < 1 {
		fields["page"] = "page must be at least 1"
	}
	if query.Limit < 1 || query.Limit > maxPageSize {
		fields["limit"] = "limit must be between 1 and 100"
	}
	if query.MinSalary != nil && *query.MinSalary < 0 {
		fields["minSalary"] = "minSalary must be non-negative"
	}
	if query.MaxSalary != nil && *query.MaxSalary < 0 {
		fields["maxSalary"] = "maxSalary must be non-negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid query", fields)
	}

	items, total, err := s.repo.List(ctx, internship.Filter{
		Search:     strings.TrimSpace(query.Search),
		Location:   strings.TrimSpace(query.Location),
		Domain:     strings.TrimSpace(query.Domain),
		Position:   strings.TrimSpace(query.Position),
		MinSalary:  query.MinSalary,
		MaxSalary:  query.MaxSalary,
		OnlyActive: onlyActive,
		Limit:      query.Limit,
		Offset:     (query.Page - 1) * query.Limit,
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []internship.Internship{}
	}
	return &ListResult{
		Items: items,
		Pagination: Pagination{
			Current: query.Page,
			Pages:   int(math.Ceil(float64(total) / float64(query.Limit))),
			Total:   total,
		},
	}, nil
}

// Get serves the public detail page; an inactive posting is indistinguishable
// from a missing one.
func (s *InternshipService) Get(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !item.IsActive {
		return nil, common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	return item, nil
}

func (s *InternshipService) GetAdmin(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InternshipService) Create(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	if err := validateInternship(item); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("internship_id", created.ID).Info("internship created")
	return created, nil
}

func (s *InternshipService) Update(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	if err := validateInternship(item); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, item.ID); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	s.logger.WithField("internship_id", updated.ID).Info("internship updated")
	return updated, nil
}

// Toggle flips visibility without touching the rest of the posting.
func (s *InternshipService) Toggle(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.SetActive(ctx, id, !item.IsActive)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{"internship_id": id, "is_active": updated.IsActive}).Info("internship toggled")
	return updated, nil
}

func (s *InternshipService) Delete(ctx context.Context, id common.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("internship_id", id).Info("internship deleted")
	return nil
}

func validateInternship(item internship.Internship) error {
	fields := map[string]string{}
	if strings.TrimSpace(item.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(item.Company) == "" {
		fields["company"] = "company is required"
	}
	if item.Salary < 0 {
		fields["salary"] = "salary must be non-negative"
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid internship", fields)
	}
	return nil
}
