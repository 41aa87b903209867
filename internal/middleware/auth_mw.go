package middleware

import (
	"net/http"

	"inventory_tracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// LoginRequiredMessage is the one-shot error surfaced on the login page
// after a redirect from a gated route.
const LoginRequiredMessage = "You must log in to access this page."

// RequireLogin gates a route group on a logged-in session. Requests
// without one are redirected to the login page and never reach the
// downstream handler.
func RequireLogin(store session.Store, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess.LoggedIn() {
			c.Next()
			return
		}

		if sess != nil {
			if err := store.SetError(c.Request.Context(), sess.Token, LoginRequiredMessage); err != nil {
				log.Error().Err(err).Msg("failed to set session error")
			}
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}
