package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"internhub/internal/common"
	"internhub/internal/domain/user"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, phone, is_verified, education, skills, keywords,
	resume_filename, resume_content_type, picture_filename, picture_content_type, application_count, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	education, err := json.Marshal(educationOrEmpty(account.Education))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode education", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, password_hash, phone, is_verified, education, skills, keywords, application_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		account.ID, account.Name, account.Email, account.PasswordHash, account.Phone, account.IsVerified,
		education, pq.Array(stringsOrEmpty(account.Skills)), pq.Array(stringsOrEmpty(account.Keywords)), account.ApplicationCount, account.CreatedAt, account.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "email already registered", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id common.UUID, update user.ProfileUpdate) (*user.User, error) {
	education, err := json.Marshal(educationOrEmpty(update.Education))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode education", err)
	}
	result, err := r.db.ExecContext(ctx, `UPDATE users SET name = $1, phone = $2, education = $3, skills = $4, keywords = $5, updated_at = $6 WHERE id = $7`,
		update.Name, update.Phone, education, pq.Array(stringsOrEmpty(update.Skills)), pq.Array(stringsOrEmpty(update.Keywords)), time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update profile", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id common.UUID, hash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, hash, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update password", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) StoreResume(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	return r.storeAttachment(ctx, id, attachment, "resume")
}

func (r *UserRepository) StorePicture(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	return r.storeAttachment(ctx, id, attachment, "picture")
}

func (r *UserRepository) storeAttachment(ctx context.Context, id common.UUID, attachment user.Attachment, kind string) error {
	query := `UPDATE users SET resume_data = $1, resume_filename = $2, resume_content_type = $3, updated_at = $4 WHERE id = $5`
	if kind == "picture" {
		query = `UPDATE users SET picture_data = $1, picture_filename = $2, picture_content_type = $3, updated_at = $4 WHERE id = $5`
	}
	result, err := r.db.ExecContext(ctx, query, attachment.Data, attachment.Filename, attachment.ContentType, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to store attachment", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) GetResume(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	return r.getAttachment(ctx, id, "resume")
}

func (r *UserRepository) GetPicture(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	return r.getAttachment(ctx, id, "picture")
}

func (r *UserRepository) getAttachment(ctx context.Context, id common.UUID, kind string) (*user.Attachment, error) {
	query := `SELECT resume_data, resume_filename, resume_content_type FROM users WHERE id = $1`
	if kind == "picture" {
		query = `SELECT picture_data, picture_filename, picture_content_type FROM users WHERE id = $1`
	}
	var attachment user.Attachment
	var data []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&data, &attachment.Filename, &attachment.ContentType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load attachment", err)
	}
	attachment.Data = data
	if !attachment.Present() {
		return nil, common.NewError(common.CodeNotFound, "attachment not found", nil)
	}
	return &attachment, nil
}

func (r *UserRepository) IncrementApplicationCount(ctx context.Context, id common.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET application_count = application_count + 1, updated_at = $1 WHERE id = $2`, time.Now().UTC(), id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to increment application count", err)
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, from, to *time.Time) ([]user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	clause := ""
	if from != nil {
		args = append(args, from.UTC())
		clause = ` WHERE created_at >= $1`
	}
	if to != nil {
		args = append(args, to.UTC())
		if clause == "" {
			clause = ` WHERE created_at <= $1`
		} else {
			clause += ` AND created_at <= $2`
		}
	}
	rows, err := r.db.QueryContext(ctx, query+clause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		account, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *account)
	}
	return items, nil
}

func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete user", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var account user.User
	var education []byte
	err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash, &account.Phone, &account.IsVerified,
		&education, pq.Array(&account.Skills), pq.Array(&account.Keywords),
		&account.Resume.Filename, &account.Resume.ContentType, &account.ProfilePicture.Filename, &account.ProfilePicture.ContentType,
		&account.ApplicationCount, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan user", err)
	}
	if len(education) > 0 {
		if err := json.Unmarshal(education, &account.Education); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to decode education", err)
		}
	}
	return &account, nil
}

func educationOrEmpty(items []user.Education) []user.Education {
	if items == nil {
		return []user.Education{}
	}
	return items
}

func stringsOrEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
