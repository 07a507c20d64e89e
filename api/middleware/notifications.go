package middleware

import (
	"net/http"

	"github.com/angelmondragon/rocketcart/internal/notify"
)

// Notifications gives each request its own inbox for user-facing cart messages.
func Notifications(size int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := notify.WithInbox(r.Context(), notify.NewInbox(size))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
