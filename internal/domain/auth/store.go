package auth

import (
	"context"
	"time"
)

// TokenStore persists refresh-token handles so a session can be revoked from
// any process. Replaces the process-local used-token sets of earlier designs.
type TokenStore interface {
	// SaveRefresh allow-lists a refresh jti for the member until ttl elapses.
	SaveRefresh(ctx context.Context, jti, memberID string, ttl time.Duration) error
	// IsRefreshValid reports whether the jti is still allow-listed.
	IsRefreshValid(ctx context.Context, jti string) (bool, error)
	// RevokeRefresh drops the jti; subsequent refreshes with it fail.
	RevokeRefresh(ctx context.Context, jti string) error
}
