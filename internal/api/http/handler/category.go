package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const categoryParam = "categoryId"

// CategoryService defines category operations.
type CategoryService interface {
	Create(ctx context.Context, name string) (model.Category, error)
	Get(ctx context.Context, id uuid.UUID) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// Category handles HTTP endpoints for product categories.
type Category struct {
	categoryService CategoryService
	logger          *logger.Logger
}

// NewCategory creates a new Category handler.
func NewCategory(categoryService CategoryService, logger *logger.Logger) *Category {
	return &Category{categoryService: categoryService, logger: logger}
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *Category) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, "Category handler: list failed", err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryResponse(category))
	}
	response.OK(c, out)
}

func (h *Category) Get(c *gin.Context) {
	id, ok := pathID(c, categoryParam)
	if !ok {
		return
	}

	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Category handler: get failed", err)
		return
	}

	response.OK(c, newCategoryResponse(category))
}

func (h *Category) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name)
	if err != nil {
		handleError(c, h.logger, "Category handler: create failed", err)
		return
	}

	response.OK(c, newCategoryResponse(category))
}
