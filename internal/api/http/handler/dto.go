package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

// Response bodies. Password material never leaves the server.

type userResponse struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	LastName  string             `json:"lastName"`
	Email     string             `json:"email"`
	Role      model.Role         `json:"role"`
	Purchases []purchaseResponse `json:"purchases"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type purchaseResponse struct {
	ProductID     uuid.UUID `json:"productId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    uuid.UUID `json:"category"`
	Quantity      int       `json:"quantity"`
	Amount        int64     `json:"amount"`
	TransactionID string    `json:"transaction_id"`
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type publisherResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type productResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"userId"`
	CategoryID  uuid.UUID `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	Sold        int       `json:"sold"`
	Verified    bool      `json:"isVerified"`
	HasPhoto    bool      `json:"hasPhoto"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type orderResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user"`
	Products      []orderItemResponse `json:"products"`
	TransactionID string              `json:"transaction_id"`
	Amount        int64               `json:"amount"`
	Address       string              `json:"address"`
	Status        model.OrderStatus   `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type orderItemResponse struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"count"`
}

type categoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u model.User) userResponse {
	purchases := make([]purchaseResponse, 0, len(u.Purchases))
	for _, p := range u.Purchases {
		purchases = append(purchases, purchaseResponse{
			ProductID:     p.ProductID,
			Name:          p.Name,
			Description:   p.Description,
			CategoryID:    p.CategoryID,
			Quantity:      p.Quantity,
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
		})
	}

	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		Purchases: purchases,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newSessionResponse(s model.Session) sessionResponse {
	return sessionResponse{Token: s.Token, ExpiresAt: s.ExpiresAt, User: newUserResponse(s.User)}
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Sold:        p.Sold,
		Verified:    p.Verified,
		HasPhoto:    p.HasPhoto(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductsResponse(products []model.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	return out
}

func newOrderResponse(o model.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Products))
	for _, item := range o.Products {
		items = append(items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return orderResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Products:      items,
		TransactionID: o.TransactionID,
		Amount:        o.Amount,
		Address:       o.Address,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func newOrdersResponse(orders []model.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, newOrderResponse(o))
	}
	return out
}

func newCategoryResponse(c model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
