package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/revuehub/api/internal/application"
	"github.com/revuehub/api/pkg/response"
	"github.com/revuehub/api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,username,max=150"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

type tokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// Signup registers a username/email pair and emails a confirmation code.
// Calling it again for the same pair rotates the code.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Signup(c.Request.Context(), req.Username, req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"username": req.Username,
		"email":    req.Email,
	}, "confirmation code sent")
}

// Token exchanges a confirmation code for a JWT access token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, err := h.Svc.IssueToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "token issued")
}
