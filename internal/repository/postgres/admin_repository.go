package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"internhub/internal/common"
	"internhub/internal/domain/admin"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, account admin.Admin) (*admin.Admin, error) {
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO admins (id, username, password_hash, email, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		account.ID, account.Username, account.PasswordHash, account.Email, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "username already taken", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create admin", err)
	}
	return &account, nil
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, email, created_at FROM admins WHERE username = $1`, username)
	return scanAdmin(row)
}

func (r *AdminRepository) GetByID(ctx context.Context, id common.UUID) (*admin.Admin, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, email, created_at FROM admins WHERE id = $1`, id)
	return scanAdmin(row)
}

func scanAdmin(row rowScanner) (*admin.Admin, error) {
	var account admin.Admin
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Email, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "admin not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to scan admin", err)
	}
	return &account, nil
}
