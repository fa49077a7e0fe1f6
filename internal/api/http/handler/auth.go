package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/api/http/middleware"
	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// AuthService defines user registration, login and logout operations.
type AuthService interface {
	Signup(ctx context.Context, params model.SignupParams) (model.Session, error)
	Signin(ctx context.Context, email, password string) (model.Session, error)
	Signout(ctx context.Context, token string) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService  AuthService
	secureCookie bool
	logger       *logger.Logger
	now          func() time.Time
}

// NewAuth creates a new Auth handler. secureCookie marks the session cookie
// as HTTPS only.
func NewAuth(authService AuthService, secureCookie bool, logger *logger.Logger) *Auth {
	return &Auth{
		authService:  authService,
		secureCookie: secureCookie,
		logger:       logger,
		now:          time.Now,
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"max=32"`
	LastName string `json:"lastName" binding:"max=32"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,max=64"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a user and starts a session.
func (h *Auth) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	session, err := h.authService.Signup(c.Request.Context(), model.SignupParams{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		handleError(c, h.logger, "Auth handler: signup failed", err)
		return
	}

	h.setCookie(c, session)
	response.OK(c, newSessionResponse(session))
}

// Signin authenticates a user and starts a session.
func (h *Auth) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	session, err := h.authService.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, h.logger, "Auth handler: signin failed", err)
		return
	}

	h.setCookie(c, session)
	response.OK(c, newSessionResponse(session))
}

// Signout clears the session cookie and revokes the presented token, if any.
func (h *Auth) Signout(c *gin.Context) {
	if err := h.authService.Signout(c.Request.Context(), middleware.ExtractToken(c)); err != nil {
		handleError(c, h.logger, "Auth handler: signout failed", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secureCookie, true)
	response.OKMessage(c, "User sign out successfully")
}

func (h *Auth) setCookie(c *gin.Context, session model.Session) {
	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	if maxAge <= 0 {
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, session.Token, maxAge, "/", "", h.secureCookie, true)
}
