package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging instead of
// failing the caller.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging instead of failing the caller.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateUserCache drops every cached view of one user. Called on invite,
// signup, and delete so invitation state is never served stale.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID uint, email string) {
	SafeDelete(ctx, cm.User,
		fmt.Sprintf("id:%d", userID),
		fmt.Sprintf("email:%s", email))
	SafeDelete(ctx, cm.Exists, fmt.Sprintf("email:%s", email))
}
