package auth

import (
	"context"
	"time"
)

// Purpose scopes an OTP so a registration code cannot be replayed against
// password reset.
type Purpose string

const (
	PurposeRegister      Purpose = "register"
	PurposePasswordReset Purpose = "reset"
)

// OTPRepository stores short-lived codes keyed by (purpose, email). The store
// must evict entries on its own once the TTL elapses; Verify additionally
// checks the recorded expiry so a stale entry can never pass.
type OTPRepository interface {
	// UpsertCode overwrites any pending code for the address.
	UpsertCode(ctx context.Context, purpose Purpose, email, code string, ttl time.Duration) error
	// VerifyCode reports whether the code matches the last issued one and is
	// still within its validity window. A mismatch does not consume the code.
	VerifyCode(ctx context.Context, purpose Purpose, email, code string, now time.Time) (bool, error)
	// InvalidateCode removes a consumed code.
	InvalidateCode(ctx context.Context, purpose Purpose, email string) error
}
