package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/bookmylook-auth/internal/dto"
	"github.com/BruksfildServices01/bookmylook-auth/internal/httpresp"
	ucAuth "github.com/BruksfildServices01/bookmylook-auth/internal/usecase/auth"
)

type AuthHandler struct {
	register      *ucAuth.Register
	login         *ucAuth.Login
	refresh       *ucAuth.RefreshTokens
	requestReset  *ucAuth.RequestPasswordReset
	resetPassword *ucAuth.ResetPassword
}

func NewAuthHandler(
	register *ucAuth.Register,
	login *ucAuth.Login,
	refresh *ucAuth.RefreshTokens,
	requestReset *ucAuth.RequestPasswordReset,
	resetPassword *ucAuth.ResetPassword,
) *AuthHandler {
	return &AuthHandler{
		register:      register,
		login:         login,
		refresh:       refresh,
		requestReset:  requestReset,
		resetPassword: resetPassword,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.register.Execute(c.Request.Context(), &req, client(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.OK(c, res, "User registered successfully")
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.login.Execute(c.Request.Context(), &req, client(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.OK(c, res, "Login successful")
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bind(c, &req) {
		return
	}

	pair, err := h.refresh.Execute(c.Request.Context(), &req, client(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.OK(c, pair, "Token refreshed successfully")
}

// POST /api/auth/logout
//
// Tokens live with the client; there is nothing to clear server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	httpresp.Message(c, "Logged out successfully")
}

// POST /api/auth/request-password-reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if !bind(c, &req) {
		return
	}

	msg, err := h.requestReset.Execute(c.Request.Context(), &req, client(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Message(c, msg)
}

// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bind(c, &req) {
		return
	}

	msg, err := h.resetPassword.Execute(c.Request.Context(), &req, client(c))
	if err != nil {
		_ = c.Error(err)
		return
	}

	httpresp.Message(c, msg)
}
