package handler

import (
	"github.com/Harshana2/lims/internal/lims/entity"
	"github.com/Harshana2/lims/internal/lims/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc   *service.AuthService
	audit *auditor
}

func NewAuthHandler(svc *service.AuthService, audit *auditor) *AuthHandler {
	return &AuthHandler{svc: svc, audit: audit}
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), req)
	// the principal is not on the context yet
	c.Set("username", req.Username)
	h.audit.record(c, entity.AuditActionLogin, "Auth", "login", err)
	if err != nil {
		ServiceError(c, err)
		return
	}

	Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"token_type":    "Bearer",
		"user":          user,
	})
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	c.Set("username", req.Username)
	h.audit.record(c, entity.AuditActionCreate, "Auth", "register user "+req.Username, err)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, user)
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"token_type":    "Bearer",
	})
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.GetCurrentUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, user)
}
