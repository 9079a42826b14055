package auth

import (
	"context"
	"time"
)

// TokenGenerator issues access tokens for authenticated users.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
	// TTL is how long an issued token stays valid.
	TTL() time.Duration
}
