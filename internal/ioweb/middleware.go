package ioweb

import (
	"net/http"
	"strings"

	"github.com/aire-program/aire-impact-dashboard/pkg/source"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionHeader carries the session id in requests and responses.
	SessionHeader = "X-Session-ID"
	// SessionCookie carries the session id for browsers.
	SessionCookie = "aire_session"

	sessionKey = "session"
)

// attachSession resolves the session of a request and mints a new id
// when none is given.
func (s *Server) attachSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Header(SessionHeader, id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		c.Set(sessionKey, s.registry.Get(id))
		c.Next()
	}
}

func session(c *gin.Context) *source.Session {
	return c.MustGet(sessionKey).(*source.Session)
}
