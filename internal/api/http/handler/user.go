package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/middleware"
	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// UserService defines profile operations.
type UserService interface {
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Update(ctx context.Context, user model.User, params model.UpdateUserParams) (model.User, error)
	PurchaseList(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	Publisher(ctx context.Context, userID uuid.UUID) (model.User, error)
}

// User handles HTTP endpoints for user profiles.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{userService: userService, contextManager: contextManager, logger: logger}
}

type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=32"`
	LastName *string `json:"lastName" binding:"omitempty,min=1,max=32"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// Get returns the resolved profile.
func (h *User) Get(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}
	response.OK(c, newUserResponse(profile))
}

// Update changes profile fields present in the body.
func (h *User) Update(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	updated, err := h.userService.Update(c.Request.Context(), profile, model.UpdateUserParams{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
	})
	if err != nil {
		handleError(c, h.logger, "User handler: update failed", err)
		return
	}

	response.OK(c, newUserResponse(updated))
}

// PurchaseList returns the orders placed by the resolved user.
func (h *User) PurchaseList(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}

	orders, err := h.userService.PurchaseList(c.Request.Context(), profile.ID)
	if err != nil {
		handleError(c, h.logger, "User handler: purchase list failed", err)
		return
	}

	response.OK(c, newOrdersResponse(orders))
}

// Publisher returns the public name and email of a product uploader.
func (h *User) Publisher(c *gin.Context) {
	userID, ok := pathID(c, middleware.UserParam)
	if !ok {
		return
	}

	user, err := h.userService.Publisher(c.Request.Context(), userID)
	if err != nil {
		handleError(c, h.logger, "User handler: publisher lookup failed", err)
		return
	}

	response.OK(c, publisherResponse{Name: user.Name, Email: user.Email})
}
