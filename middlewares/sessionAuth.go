package middlewares

import (
	"net/http"

	"DoctorPortal/models"
	"DoctorPortal/services"
	"DoctorPortal/utils"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionAuthMiddleware resolves the session cookie to its stored record and
// attaches it to the request context. Requests without a live session get a
// 401 carrying the login redirect.
func SessionAuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			rejectUnauthenticated(c)
			return
		}

		sess, err := auth.Resolve(c.Request.Context(), token)
		if err != nil || sess == nil {
			utils.ClearSessionCookie(c)
			rejectUnauthenticated(c)
			return
		}

		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session attached by SessionAuthMiddleware.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return sess
}

func rejectUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    "Please log in to continue.",
		"redirect": "/login",
	})
}
