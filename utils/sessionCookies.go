package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the portal session cookie.
const SessionCookieName = "portal_session"

// SetSessionCookie attaches the encrypted session token to the response.
func SetSessionCookie(c *gin.Context, token string) {
	setCookie(c, SessionCookieName, token, SessionExpiry)
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c *gin.Context) {
	clearCookie(c, SessionCookieName)
}

func setCookie(c *gin.Context, name, value string, expiry time.Duration) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetCookie(name, value, int(expiry.Seconds()), "/", "", secure, true)
}

func clearCookie(c *gin.Context, name string) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetCookie(name, "", -1, "/", "", secure, true)
}
