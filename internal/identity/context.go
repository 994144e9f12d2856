package identity

import "context"

type contextKey string

const emailKey contextKey = "admin_email"

// Anonymous is recorded as the actor when no identity is present.
const Anonymous = "anonymous"

func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func EmailFromContext(ctx context.Context) string {
	if e, ok := ctx.Value(emailKey).(string); ok && e != "" {
		return e
	}
	return Anonymous
}
