package handlers

import (
	"errors"

	"DoctorPortal/backend"
	"DoctorPortal/middlewares"
	"DoctorPortal/models"
	"DoctorPortal/services"
	"DoctorPortal/utils"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AuthHandler struct {
	AuthService  *services.AuthService
	OrderService *services.OrderService
}

func NewAuthHandler(authService *services.AuthService, orderService *services.OrderService) *AuthHandler {
	return &AuthHandler{
		AuthService:  authService,
		OrderService: orderService,
	}
}

// Login authenticates the doctor against the backend and sets the session
// cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials models.LoginRequest
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	sess, token, err := h.AuthService.Login(c.Request.Context(), credentials)
	if err != nil {
		var validationErrs validation.Errors
		if errors.As(err, &validationErrs) {
			c.JSON(400, gin.H{"error": validationErrs})
			return
		}
		if errors.Is(err, backend.ErrUnauthorized) {
			c.JSON(401, gin.H{"error": "Invalid username or password."})
			return
		}
		middlewares.BackendError(c, err, "We could not log you in. Please try again.")
		return
	}

	utils.SetSessionCookie(c, token)
	c.JSON(200, gin.H{
		"doctor_name": sess.DoctorName,
		"username":    sess.Username,
	})
}

// Logout tears down the session record, its review workspace, and the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	if sess != nil {
		h.OrderService.Forget(sess.SessionID)
		if err := h.AuthService.Logout(c.Request.Context(), sess); err != nil {
			middlewares.HttpError(c, "Failed to log out", 500, err)
			return
		}
	}
	utils.ClearSessionCookie(c)
	c.JSON(200, gin.H{"message": "Logged out"})
}

// Session reports who is logged in. The session gate already rejected
// anonymous requests.
func (h *AuthHandler) Session(c *gin.Context) {
	sess := middlewares.SessionFromContext(c)
	if sess == nil {
		c.JSON(401, gin.H{"error": "Please log in to continue.", "redirect": "/login"})
		return
	}
	c.JSON(200, gin.H{
		"doctor_name": sess.DoctorName,
		"username":    sess.Username,
	})
}
