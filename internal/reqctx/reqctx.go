// Package reqctx carries the authenticated user and the response locale
// through a request context.
package reqctx

import "context"

type contextKey int

const (
	userKey contextKey = iota
	localeKey
	requestIDKey
)

// User is the authenticated caller.
type User struct {
	ID       int64
	Username string
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFrom(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey, locale)
}

// LocaleFrom falls back to "en" when no locale was negotiated.
func LocaleFrom(ctx context.Context) string {
	if locale, ok := ctx.Value(localeKey).(string); ok && locale != "" {
		return locale
	}
	return "en"
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
