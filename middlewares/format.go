package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"

	"DoctorPortal/backend"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error and writes an HTTP error response to the client.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, gin.H{"error": message})
}

// BackendError maps a failed backend call to the portal response. A rejected
// credential becomes a 401 with a login redirect, a cancelled request is
// dropped without a body, and everything else surfaces the backend's message
// when it has one.
func BackendError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":    "Your session has expired. Please log in again.",
			"redirect": "/login",
		})
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		status := http.StatusBadGateway
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		HttpError(c, backend.UserMessage(err, fallback), status, err)
	}
}
