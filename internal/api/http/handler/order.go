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

// OrderService defines checkout and order management operations.
type OrderService interface {
	Checkout(ctx context.Context, user model.User, params model.CheckoutParams) (model.Order, error)
	Get(ctx context.Context, id uuid.UUID) (model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	AllowedStatuses() []model.OrderStatus
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (model.Order, error)
}

// Order handles HTTP endpoints for checkout and order administration.
type Order struct {
	orderService   OrderService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewOrder creates a new Order handler.
func NewOrder(orderService OrderService, contextManager model.ContextManager, logger *logger.Logger) *Order {
	return &Order{orderService: orderService, contextManager: contextManager, logger: logger}
}

type checkoutItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity"`
}

type checkoutRequest struct {
	Products      []checkoutItemRequest `json:"products" binding:"dive"`
	TransactionID string                `json:"transaction_id"`
	Amount        int64                 `json:"amount"`
	Address       string                `json:"address"`
}

type updateStatusRequest struct {
	OrderID uuid.UUID `json:"orderId" binding:"required"`
	Status  string    `json:"status" binding:"required"`
}

// Checkout places an order for the resolved user.
func (h *Order) Checkout(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	items := make([]model.CheckoutItem, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, model.CheckoutItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	order, err := h.orderService.Checkout(c.Request.Context(), profile, model.CheckoutParams{
		Items:         items,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Address:       req.Address,
	})
	if err != nil {
		handleError(c, h.logger, "Order handler: checkout failed", err)
		return
	}

	response.OK(c, newOrderResponse(order))
}

// Get returns one order of the resolved user. Orders of other users are
// reported as not found.
func (h *Order) Get(c *gin.Context) {
	profile, ok := profileFrom(c, h.contextManager)
	if !ok {
		return
	}
	id, ok := pathID(c, orderParam)
	if !ok {
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.logger, "Order handler: get failed", err)
		return
	}
	if order.UserID != profile.ID {
		response.Abort(c, apierrors.NewErrOrderNotFound())
		return
	}

	response.OK(c, newOrderResponse(order))
}

// ListAll returns every order.
func (h *Order) ListAll(c *gin.Context) {
	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		handleError(c, h.logger, "Order handler: list failed", err)
		return
	}

	response.OK(c, newOrdersResponse(orders))
}

// AllowedStatuses returns the configured order statuses.
func (h *Order) AllowedStatuses(c *gin.Context) {
	response.OK(c, h.orderService.AllowedStatuses())
}

// UpdateStatus moves an order to the requested status.
func (h *Order) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Abort(c, apierrors.NewErrUnprocessable(bindingMessage(err)))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
	if err != nil {
		handleError(c, h.logger, "Order handler: status update failed", err)
		return
	}

	response.OK(c, newOrderResponse(order))
}
