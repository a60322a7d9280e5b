package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/veritrace/batchtrack/internal/database"
	"github.com/veritrace/batchtrack/internal/models"
)

type contextKey string

// UserContextKey carries the resolved *models.Credential.
const UserContextKey contextKey = "user"

// SessionName is the cookie holding the admin session.
const SessionName = "batchtrack_session"

// RequireAuth wraps admin handlers. The session carries only the
// username; the full credential row is re-resolved on every request.
// Unauthenticated requests are redirected to the home page.
func RequireAuth(store sessions.Store, db *database.DB) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionName)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			username, ok := session.Values["username"].(string)
			if !ok || username == "" {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			var cred models.Credential
			if err := db.Where("username = ?", username).First(&cred).Error; err != nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, &cred)
			next(w, r.WithContext(ctx))
		}
	}
}
