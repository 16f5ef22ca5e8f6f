package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/whizdome/promorama-backend/internal/application/identity"
)

// AuthHandler serves the unauthenticated credential endpoints
type AuthHandler struct {
	BaseHandler
	auth *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes registers the auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password/:token", h.ResetPassword)
		auth.POST("/verify-email/:token", h.VerifyEmail)
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	User      any    `json:"user"`
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Email and password are required")
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Logged in", loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		User:      res.User,
	})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword starts a password reset. The response is identical whether
// or not the email has an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A valid email is required")
		return
	}

	// TODO: hand the raw token to the mailer once the SMTP sender lands
	if _, err := h.auth.BeginPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "If the account exists, a reset email has been sent", nil)
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword consumes a reset token from the path and sets a new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "A password of at least 8 characters is required")
		return
	}

	if err := h.auth.CompletePasswordReset(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Password has been reset", nil)
}

// VerifyEmail consumes a verification token from the path
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	u, err := h.auth.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Email verified", u)
}
