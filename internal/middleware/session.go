package middleware

import (
	"context"
	"net/http"

	"microblog/internal/lang"
	"microblog/internal/logging"
	"microblog/internal/reqctx"
)

// LastSeenToucher records activity of an authenticated user.
type LastSeenToucher interface {
	TouchLastSeen(ctx context.Context, userID int64) error
}

// LastSeenMiddleware advances last_seen for every authenticated request. It
// must run inside AuthMiddleware. A failed update is logged and the request
// goes on.
func LastSeenMiddleware(users LastSeenToucher, log logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, ok := reqctx.UserFrom(r.Context()); ok {
				if err := users.TouchLastSeen(r.Context(), user.ID); err != nil {
					log.Warn(r.Context(), "last seen not updated", "user_id", user.ID, "error", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LocaleMiddleware picks the response locale from Accept-Language.
func LocaleMiddleware(m *lang.Matcher) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := m.Match(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(reqctx.WithLocale(r.Context(), locale)))
		})
	}
}
