package middleware

import (
	"inventory_tracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SessionKey is the gin context key holding the resolved *session.Session.
const SessionKey = "session"

// LoadSession resolves the browser session from the cookie, creating one
// lazily on first interaction. A store outage degrades to a transient
// unsaved session so the request can still complete (and be gated).
func LoadSession(store session.Store, cookieName string, ttlSeconds int, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var sess *session.Session
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			sess, err = store.Get(ctx, token)
			if err != nil {
				log.Error().Err(err).Msg("failed to load session")
			}
		}

		if sess == nil {
			sess = &session.Session{Token: session.NewToken()}
			if err := store.Save(ctx, sess); err != nil {
				log.Error().Err(err).Msg("failed to create session")
			}
			c.SetCookie(cookieName, sess.Token, ttlSeconds, "/", "", false, true)
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the session resolved by LoadSession, or nil when
// the middleware did not run.
func SessionFrom(c *gin.Context) *session.Session {
	val, exists := c.Get(SessionKey)
	if !exists {
		return nil
	}
	sess, ok := val.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}
