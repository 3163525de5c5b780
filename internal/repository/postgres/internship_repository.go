package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"internhub/internal/common"
	"internhub/internal/domain/internship"
)

type InternshipRepository struct {
	db *sql.DB
}

func NewInternshipRepository(db *sql.DB) *InternshipRepository {
	return &InternshipRepository{db: db}
}

const internshipColumns = `id, title, company, location, domain, position, salary, internship_type, duration, description, requirements, is_active, created_at, updated_at`

func (r *InternshipRepository) Create(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	item.ID = common.NewUUID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO internships (id, title, company, location, domain, position, salary, internship_type, duration, description, requirements, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		item.ID, item.Title, item.Company, item.Location, item.Domain, item.Position, item.Salary, item.Type, item.Duration, item.Description, pq.Array(stringsOrEmpty(item.Requirements)), item.IsActive, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create internship", err)
	}
	return &item, nil
}

// CreateBatch inserts all rows in one transaction so a bulk import is either
// fully recorded or not at all.
func (r *InternshipRepository) CreateBatch(ctx context.Context, items []internship.Internship) ([]internship.Internship, error) {
	if len(items) == 0 {
		return nil, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	created := make([]internship.Internship, 0, len(items))
	for _, item := range items {
		item.ID = common.NewUUID()
		item.CreatedAt = now
		item.UpdatedAt = now
		_, err := tx.ExecContext(ctx, `INSERT INTO internships (id, title, company, location, domain, position, salary, internship_type, duration, description, requirements, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			item.ID, item.Title, item.Company, item.Location, item.Domain, item.Position, item.Salary, item.Type, item.Duration, item.Description, pq.Array(stringsOrEmpty(item.Requirements)), item.IsActive, item.CreatedAt, item.UpdatedAt)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to insert internship batch", err)
		}
		created = append(created, item)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit internship batch", err)
	}
	return created, nil
}

func (r *InternshipRepository) Update(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	item.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE internships SET title = $1, company = $2, location = $3, domain = $4, position = $5, salary = $6, internship_type = $7, duration = $8, description = $9, requirements = $10, is_active = $11, updated_at = $12
		WHERE id = $13`,
		item.Title, item.Company, item.Location, item.Domain, item.Position, item.Salary, item.Type, item.Duration, item.Description, pq.Array(stringsOrEmpty(item.Requirements)), item.IsActive, item.UpdatedAt, item.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update internship", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "internship not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, item.ID)
}

func (r *InternshipRepository) GetByID(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+internshipColumns+` FROM internships WHERE id = $1`, id)
	return scanInternship(row)
}

func (r *InternshipRepository) SetActive(ctx context.Context, id common.UUID, active bool) (*internship.Internship, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE internships SET is_active = $1, updated_at = $2 WHERE id = $3`, active, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to toggle internship", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "internship not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

// List applies the filter and returns one page plus the total match count
// before pagination. Ordering is newest first with id as the tie-break so
// pages are stable when timestamps collide.
func (r *InternshipRepository) List(ctx context.Context, filter internship.Filter) ([]internship.Internship, int, error) {
	where, args := buildInternshipWhere(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM internships` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to count internships", err)
	}

	query := `SELECT ` + internshipColumns + ` FROM internships` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, common.NewError(common.CodeInternal, "failed to list internships", err)
	}
	defer rows.Close()
	var items []internship.Internship
	for rows.Next() {
		item, err := scanInternship(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, nil
}

func buildInternshipWhere(filter internship.Filter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.OnlyActive {
		clauses = append(clauses, "is_active = TRUE")
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern)
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR company ILIKE $%d OR description ILIKE $%d)", n, n, n))
	}
	if filter.Location != "" {
		add("location ILIKE $%d", "%"+filter.Location+"%")
	}
	if filter.Domain != "" {
		add("domain ILIKE $%d", "%"+filter.Domain+"%")
	}
	if filter.Position != "" {
		add("position ILIKE $%d", "%"+filter.Position+"%")
	}
	if filter.MinSalary != nil {
		add("salary >= $%d", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		add("salary <= $%d", *filter.MaxSalary)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *InternshipRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM internships WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete internship", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "internship not found", sql.ErrNoRows)
	}
	return nil
}

func scanInternship(row rowScanner) (*internship.Internship, error) {
	var item internship.Internship
	err := row.Scan(&item.ID, &item.Title, &item.Company, &item.Location, &item.Domain, &item.Position, &item.Salary, &item.Type, &item.Duration, &item.Description, pq.Array(&item.Requirements), &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "internship not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan internship", err)
	}
	return &item, nil
}
