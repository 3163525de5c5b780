package redis

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"internhub/internal/common"
	"internhub/internal/domain/auth"
)

// OTPRepository keeps pending codes in redis under a TTL matching the OTP
// validity window, so the store evicts stale codes on its own. The code is
// stored as a sha256 hash, never in plaintext, and the expiry is recorded in
// the entry as well so verification does not depend on eviction timing.
type OTPRepository struct {
	client *redis.Client
	prefix string
}

func NewOTPRepository(client *redis.Client, prefix string) *OTPRepository {
	return &OTPRepository{client: client, prefix: prefix}
}

type otpEntry struct {
	Hash      string `json:"hash"`
	ExpiresAt int64  `json:"expires_at"`
}

func (r *OTPRepository) key(purpose auth.Purpose, email string) string {
	return r.prefix + "otp:" + string(purpose) + ":" + email
}

func (r *OTPRepository) UpsertCode(ctx context.Context, purpose auth.Purpose, email, code string, ttl time.Duration) error {
	entry := otpEntry{
		Hash:      hashCode(code),
		ExpiresAt: time.Now().UTC().Add(ttl).Unix(),
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to encode otp entry", err)
	}
	if err := r.client.Set(ctx, r.key(purpose, email), payload, ttl).Err(); err != nil {
		return common.NewError(common.CodeUnavailable, "failed to store otp", err)
	}
	return nil
}

func (r *OTPRepository) VerifyCode(ctx context.Context, purpose auth.Purpose, email, code string, now time.Time) (bool, error) {
	payload, err := r.client.Get(ctx, r.key(purpose, email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, common.NewError(common.CodeUnavailable, "failed to load otp", err)
	}
	var entry otpEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return false, common.NewError(common.CodeInternal, "failed to decode otp entry", err)
	}
	if now.UTC().Unix() > entry.ExpiresAt {
		return false, nil
	}
	expected := hashCode(code)
	return subtle.ConstantTimeCompare([]byte(entry.Hash), []byte(expected)) == 1, nil
}

func (r *OTPRepository) InvalidateCode(ctx context.Context, purpose auth.Purpose, email string) error {
	if err := r.client.Del(ctx, r.key(purpose, email)).Err(); err != nil {
		return common.NewError(common.CodeUnavailable, "failed to invalidate otp", err)
	}
	return nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
