package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const ContextUserIDKey contextKey = "userID"

// SessionData is what middleware needs to know about an authenticated user.
type SessionData struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID := ctx.Value(ContextUserIDKey)
	userIDStr, ok := userID.(string)
	return userIDStr, ok
}

func GenerateUUID() string {
	return uuid.NewString()
}
