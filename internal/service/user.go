package service

import "context"

type userKey struct{}

// WithUser returns ctx carrying the authenticated user. Simulation lookups
// made with it see the user's own imports plus the shared ones.
func WithUser(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserFrom returns the user in ctx, or 0 when the caller is not a user
// (startup imports, the CLI). User 0 owns the shared imports.
func UserFrom(ctx context.Context) int {
	id, _ := ctx.Value(userKey{}).(int)
	return id
}

func visibleTo(owner, user int) bool {
	return owner == 0 || owner == user
}
