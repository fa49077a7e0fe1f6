package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/api/http/response"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

// ProductService defines catalog operations.
type ProductService interface {
	Create(ctx context.Context, owner model.User, params model.ProductParams, photo *model.Photo) (model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (model.Product, error)
	Photo(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error)
	Update(ctx context.Context, actor model.User, id uuid.UUID, params model.ProductParams, photo *model.Photo) (model.Product, error)
	Delete(ctx context.Context, actor model.User, id uuid.UUID) (model.Product, error)
	AdminDelete(ctx context.Context, id uuid.UUID) (model.Product, error)
	Approve(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListVerified(ctx context.Context) ([]model.Product, error)
	ListUnverified(ctx context.Context) ([]model.Product, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error)
}

// Product handles HTTP endpoints for the product catalog.
type Product struct {
	productService ProductService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProduct creates a new Product handler.
func NewProduct(productService ProductService, contextManager model.ContextManager, logger *logger.Logger) *Product {
	return &Product{productService: productService, contextManager: contextManager, logger: logger}
}

// Create stores an unverified product uploaded by the resolved user.
func (h *Product) Create(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}

	params, photo, file, err := productForm(c)
	if err != nil {
		handleError(c, h.logger, "Product handler: failed to read form", err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.productService.Create(c.Request.Context(), profile, params, photo)
	if err != nil {
		handleError(c, h.logger, "Product handler: create failed", err)
		return
	}

	response.OKMessage(c, fmt.Sprintf("%s uploaded and sent to admin for approval.", product.Name))
}

// Get returns product metadata without the photo bytes.
func (h *Product) Get(c *gin.Context) {
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Product handler: get failed", err)
		return
	}

	response.OK(c, newProductResponse(product))
}

// Photo streams the product photo with its stored content type.
func (h *Product) Photo(c *gin.Context) {
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	reader, contentType, err := h.productService.Photo(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Product handler: photo download failed", err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, contentType, reader, nil)
}

// Update changes the product fields present in the form.
func (h *Product) Update(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	params, photo, file, err := productForm(c)
	if err != nil {
		handleError(c, h.logger, "Product handler: failed to read form", err)
		return
	}
	if file != nil {
		defer file.Close()
	}

	product, err := h.productService.Update(c.Request.Context(), profile, id, params, photo)
	if err != nil {
		handleError(c, h.logger, "Product handler: update failed", err)
		return
	}

	response.OK(c, newProductResponse(product))
}

// Delete removes a product owned by the resolved user.
func (h *Product) Delete(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	product, err := h.productService.Delete(c.Request.Context(), profile, id)
	if err != nil {
		handleError(c, h.logger, "Product handler: delete failed", err)
		return
	}

	response.OKMessage(c, fmt.Sprintf("Deleted %s successfully", product.Name))
}

// AdminDelete removes any product.
func (h *Product) AdminDelete(c *gin.Context) {
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	product, err := h.productService.AdminDelete(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Product handler: admin delete failed", err)
		return
	}

	response.OKMessage(c, fmt.Sprintf("Deleted %s successfully.", product.Name))
}

// Approve publishes a product in the catalog.
func (h *Product) Approve(c *gin.Context) {
	id, ok := pathID(c, productParam)
	if !ok {
		return
	}

	product, err := h.productService.Approve(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Product handler: approve failed", err)
		return
	}

	response.OKMessage(c, fmt.Sprintf("Approved %s successfully.", product.Name))
}

// ListVerified returns the public catalog.
func (h *Product) ListVerified(c *gin.Context) {
	products, err := h.productService.ListVerified(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, "Product handler: list verified failed", err)
		return
	}

	response.OK(c, newProductsResponse(products))
}

// ListUnverified returns products awaiting approval.
func (h *Product) ListUnverified(c *gin.Context) {
	products, err := h.productService.ListUnverified(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, "Product handler: list unverified failed", err)
		return
	}

	response.OK(c, newProductsResponse(products))
}

// ListByOwner returns products uploaded by the resolved user.
func (h *Product) ListByOwner(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}

	products, err := h.productService.ListByOwner(c.Request.Context(), profile.ID)
	if err != nil {
		handleError(c, h.logger, "Product handler: list by owner failed", err)
		return
	}

	response.OK(c, newProductsResponse(products))
}
