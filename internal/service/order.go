package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/orderstate"
)

type Order struct {
	orderStore    model.OrderStore
	checkoutStore model.CheckoutStore
	productStore  model.ProductStore
	userStore     model.UserStore
	states        *orderstate.Machine
	events        model.EventPublisher
	logger        *logger.Logger
}

func NewOrder(
	orderStore model.OrderStore,
	checkoutStore model.CheckoutStore,
	productStore model.ProductStore,
	userStore model.UserStore,
	states *orderstate.Machine,
	events model.EventPublisher,
	logger *logger.Logger,
) *Order {
	return &Order{
		orderStore:    orderStore,
		checkoutStore: checkoutStore,
		productStore:  productStore,
		userStore:     userStore,
		states:        states,
		events:        events,
		logger:        logger,
	}
}

// Checkout places an order for the user. Product names and prices are taken
// from the catalog, and a purchase record is appended to the user for every
// ordered product in the same store operation as the order itself.
func (s *Order) Checkout(ctx context.Context, user model.User, params model.CheckoutParams) (model.Order, error) {
	if len(params.Items) == 0 {
		return model.Order{}, apierrors.NewErrValidation("order must contain at least one product")
	}

	quantities := make(map[uuid.UUID]int, len(params.Items))
	ids := make([]uuid.UUID, 0, len(params.Items))
	for _, item := range params.Items {
		if item.Quantity < 1 {
			return model.Order{}, apierrors.NewErrValidation(fmt.Sprintf("invalid quantity %d for product %s", item.Quantity, item.ProductID))
		}
		if _, seen := quantities[item.ProductID]; !seen {
			ids = append(ids, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	items := make([]model.OrderItem, 0, len(ids))
	products := make([]model.Product, 0, len(ids))
	var amount int64
	for _, id := range ids {
		product, err := s.productStore.GetByID(ctx, id)
		if errors.Is(err, model.ErrNotFound) {
			return model.Order{}, apierrors.NewErrProductNotFound()
		}
		if err != nil {
			return model.Order{}, fmt.Errorf("failed to get product by id: %w", err)
		}
		if !product.Verified {
			return model.Order{}, apierrors.NewErrProductNotFound()
		}

		quantity := quantities[id]
		if product.Stock < quantity {
			return model.Order{}, apierrors.NewErrUnprocessable(fmt.Sprintf("not enough stock for %s", product.Name))
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
		products = append(products, product)
		amount += product.Price * int64(quantity)
	}

	if params.Amount != 0 && params.Amount != amount {
		return model.Order{}, apierrors.NewErrUnprocessable("order amount does not match product prices")
	}

	transactionID := strings.TrimSpace(params.TransactionID)
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	now := time.Now()
	order := model.Order{
		ID:            uuid.New(),
		UserID:        user.ID,
		Products:      items,
		TransactionID: transactionID,
		Amount:        amount,
		Address:       strings.TrimSpace(params.Address),
		Status:        s.states.Initial(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	purchases := make([]model.Purchase, 0, len(products))
	for i, product := range products {
		purchases = append(purchases, model.Purchase{
			ProductID:     product.ID,
			Name:          product.Name,
			Description:   product.Description,
			CategoryID:    product.CategoryID,
			Quantity:      items[i].Quantity,
			Amount:        amount,
			TransactionID: transactionID,
		})
	}

	placed, err := s.checkoutStore.PlaceOrder(ctx, order, purchases)
	if errors.Is(err, model.ErrConflict) {
		return model.Order{}, apierrors.NewErrUnprocessable("not enough stock for one or more products")
	}
	if err != nil {
		s.logger.Error("Order service: failed to place order",
			"user_id", user.ID,
			"error", err.Error())
		return model.Order{}, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info("Order service: order placed",
		"order_id", placed.ID,
		"user_id", user.ID,
		"amount", placed.Amount)
	publishEvent(ctx, s.events, s.logger, model.Event{
		Type: model.EventOrderCreated,
		Payload: map[string]any{
			"order_id":       placed.ID,
			"user_id":        placed.UserID,
			"amount":         placed.Amount,
			"transaction_id": placed.TransactionID,
			"status":         placed.Status,
		},
	})

	return placed, nil
}

// PushPurchases appends purchase records to the user. Repeated calls with the
// same records append duplicates.
func (s *Order) PushPurchases(ctx context.Context, userID uuid.UUID, purchases []model.Purchase) error {
	err := s.userStore.PushPurchases(ctx, userID, purchases)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrUserNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to push purchases: %w", err)
	}

	return nil
}

func (s *Order) Get(ctx context.Context, id uuid.UUID) (model.Order, error) {
	order, err := s.orderStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Order{}, apierrors.NewErrOrderNotFound()
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	return order, nil
}

// ListAll returns every order. An empty store is reported as not found.
func (s *Order) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, apierrors.NewErrNoOrders()
	}

	return orders, nil
}

// AllowedStatuses returns the declared order statuses in order.
func (s *Order) AllowedStatuses() []model.OrderStatus {
	return s.states.Allowed()
}

// UpdateStatus moves the order to status. Unknown statuses and transitions
// rejected by the policy leave the order unchanged.
func (s *Order) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (model.Order, error) {
	target := model.OrderStatus(status)
	if !s.states.Valid(target) {
		return model.Order{}, apierrors.NewErrInvalidOrderStatus(status)
	}

	order, err := s.Get(ctx, orderID)
	if err != nil {
		return model.Order{}, err
	}

	if err := s.states.CanTransition(order.Status, target); err != nil {
		return model.Order{}, apierrors.NewErrStatusTransition(string(order.Status), status)
	}

	err = s.orderStore.UpdateStatus(ctx, orderID, order.Status, target)
	if errors.Is(err, model.ErrNotFound) {
		return model.Order{}, apierrors.NewErrOrderStatusChanged()
	}
	if err != nil {
		s.logger.Error("Order service: failed to update order status",
			"order_id", orderID,
			"error", err.Error())
		return model.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	previous := order.Status
	order.Status = target
	order.UpdatedAt = time.Now()

	s.logger.Info("Order service: order status updated",
		"order_id", orderID,
		"from", previous,
		"to", target)
	publishEvent(ctx, s.events, s.logger, model.Event{
		Type: model.EventOrderStatusUpdated,
		Payload: map[string]any{
			"order_id": order.ID,
			"user_id":  order.UserID,
			"from":     previous,
			"to":       target,
		},
	})

	return order, nil
}
