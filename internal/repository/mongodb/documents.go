package mongodb

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

// Identifiers are stored as canonical uuid strings.

type userDoc struct {
	ID           string        `bson:"_id"`
	Name         string        `bson:"name"`
	LastName     string        `bson:"last_name"`
	Email        string        `bson:"email"`
	PasswordHash []byte        `bson:"password_hash"`
	Salt         []byte        `bson:"salt"`
	Role         int           `bson:"role"`
	Purchases    []purchaseDoc `bson:"purchases"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

type purchaseDoc struct {
	ProductID     string `bson:"product_id"`
	Name          string `bson:"name"`
	Description   string `bson:"description"`
	CategoryID    string `bson:"category_id"`
	Quantity      int    `bson:"quantity"`
	Amount        int64  `bson:"amount"`
	TransactionID string `bson:"transaction_id"`
}

type categoryDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
}

type productDoc struct {
	ID               string    `bson:"_id"`
	OwnerID          string    `bson:"owner_id"`
	CategoryID       string    `bson:"category_id"`
	Name             string    `bson:"name"`
	Description      string    `bson:"description"`
	Price            int64     `bson:"price"`
	Stock            int       `bson:"stock"`
	Sold             int       `bson:"sold"`
	Verified         bool      `bson:"verified"`
	PhotoKey         string    `bson:"photo_key"`
	PhotoContentType string    `bson:"photo_content_type"`
	CreatedAt        time.Time `bson:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at"`
}

type orderDoc struct {
	ID            string         `bson:"_id"`
	UserID        string         `bson:"user_id"`
	Products      []orderItemDoc `bson:"products"`
	TransactionID string         `bson:"transaction_id"`
	Amount        int64          `bson:"amount"`
	Address       string         `bson:"address"`
	Status        string         `bson:"status"`
	CreatedAt     time.Time      `bson:"created_at"`
	UpdatedAt     time.Time      `bson:"updated_at"`
}

type orderItemDoc struct {
	ProductID string `bson:"product_id"`
	Name      string `bson:"name"`
	Price     int64  `bson:"price"`
	Quantity  int    `bson:"quantity"`
}

func newUserDoc(u model.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		LastName:     u.LastName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Salt:         u.Salt,
		Role:         int(u.Role),
		Purchases:    newPurchaseDocs(u.Purchases),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) model() (model.User, error) {
	id, err := parseID("user", d.ID)
	if err != nil {
		return model.User{}, err
	}

	purchases := make([]model.Purchase, 0, len(d.Purchases))
	for _, p := range d.Purchases {
		purchase, err := p.model()
		if err != nil {
			return model.User{}, fmt.Errorf("user %s: %w", d.ID, err)
		}
		purchases = append(purchases, purchase)
	}

	return model.User{
		ID:           id,
		Name:         d.Name,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Salt:         d.Salt,
		Role:         model.Role(d.Role),
		Purchases:    purchases,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func newPurchaseDocs(purchases []model.Purchase) []purchaseDoc {
	docs := make([]purchaseDoc, 0, len(purchases))
	for _, p := range purchases {
		docs = append(docs, purchaseDoc{
			ProductID:     p.ProductID.String(),
			Name:          p.Name,
			Description:   p.Description,
			CategoryID:    p.CategoryID.String(),
			Quantity:      p.Quantity,
			Amount:        p.Amount,
			TransactionID: p.TransactionID,
		})
	}
	return docs
}

func (d purchaseDoc) model() (model.Purchase, error) {
	productID, err := parseID("purchase product", d.ProductID)
	if err != nil {
		return model.Purchase{}, err
	}
	categoryID, err := parseID("purchase category", d.CategoryID)
	if err != nil {
		return model.Purchase{}, err
	}

	return model.Purchase{
		ProductID:     productID,
		Name:          d.Name,
		Description:   d.Description,
		CategoryID:    categoryID,
		Quantity:      d.Quantity,
		Amount:        d.Amount,
		TransactionID: d.TransactionID,
	}, nil
}

func (d categoryDoc) model() (model.Category, error) {
	id, err := parseID("category", d.ID)
	if err != nil {
		return model.Category{}, err
	}
	return model.Category{ID: id, Name: d.Name, CreatedAt: d.CreatedAt}, nil
}

func newProductDoc(p model.Product) productDoc {
	return productDoc{
		ID:               p.ID.String(),
		OwnerID:          p.OwnerID.String(),
		CategoryID:       p.CategoryID.String(),
		Name:             p.Name,
		Description:      p.Description,
		Price:            p.Price,
		Stock:            p.Stock,
		Sold:             p.Sold,
		Verified:         p.Verified,
		PhotoKey:         p.PhotoKey,
		PhotoContentType: p.PhotoContentType,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d productDoc) model() (model.Product, error) {
	id, err := parseID("product", d.ID)
	if err != nil {
		return model.Product{}, err
	}
	ownerID, err := parseID("product owner", d.OwnerID)
	if err != nil {
		return model.Product{}, err
	}
	categoryID, err := parseID("product category", d.CategoryID)
	if err != nil {
		return model.Product{}, err
	}

	return model.Product{
		ID:               id,
		OwnerID:          ownerID,
		CategoryID:       categoryID,
		Name:             d.Name,
		Description:      d.Description,
		Price:            d.Price,
		Stock:            d.Stock,
		Sold:             d.Sold,
		Verified:         d.Verified,
		PhotoKey:         d.PhotoKey,
		PhotoContentType: d.PhotoContentType,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

func newOrderDoc(o model.Order) orderDoc {
	items := make([]orderItemDoc, 0, len(o.Products))
	for _, item := range o.Products {
		items = append(items, orderItemDoc{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return orderDoc{
		ID:            o.ID.String(),
		UserID:        o.UserID.String(),
		Products:      items,
		TransactionID: o.TransactionID,
		Amount:        o.Amount,
		Address:       o.Address,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func (d orderDoc) model() (model.Order, error) {
	id, err := parseID("order", d.ID)
	if err != nil {
		return model.Order{}, err
	}
	userID, err := parseID("order user", d.UserID)
	if err != nil {
		return model.Order{}, err
	}

	items := make([]model.OrderItem, 0, len(d.Products))
	for _, item := range d.Products {
		productID, err := parseID("order item", item.ProductID)
		if err != nil {
			return model.Order{}, fmt.Errorf("order %s: %w", d.ID, err)
		}
		items = append(items, model.OrderItem{
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	return model.Order{
		ID:            id,
		UserID:        userID,
		Products:      items,
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		Address:       d.Address,
		Status:        model.OrderStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func parseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed %s id %q: %w", kind, value, err)
	}
	return id, nil
}
