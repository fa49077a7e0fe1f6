package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/model"
)

// purchaseDoc is the JSONB representation of a purchase record.
type purchaseDoc struct {
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CategoryID    uuid.UUID `json:"category_id"`
	Quantity      int       `json:"quantity"`
	Amount        int64     `json:"amount"`
	TransactionID string    `json:"transaction_id"`
}

// orderItemDoc is the JSONB representation of an order line.
type orderItemDoc struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
}

func encodePurchases(purchases []model.Purchase) ([]byte, error) {
	docs := make([]purchaseDoc, 0, len(purchases))
	for _, p := range purchases {
		docs = append(docs, purchaseDoc(p))
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchases: %w", err)
	}
	return data, nil
}

func decodePurchases(data []byte) ([]model.Purchase, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var docs []purchaseDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode purchases: %w", err)
	}

	purchases := make([]model.Purchase, 0, len(docs))
	for _, d := range docs {
		purchases = append(purchases, model.Purchase(d))
	}
	return purchases, nil
}

func encodeOrderItems(items []model.OrderItem) ([]byte, error) {
	docs := make([]orderItemDoc, 0, len(items))
	for _, item := range items {
		docs = append(docs, orderItemDoc(item))
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order items: %w", err)
	}
	return data, nil
}

func decodeOrderItems(data []byte) ([]model.OrderItem, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var docs []orderItemDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	items := make([]model.OrderItem, 0, len(docs))
	for _, d := range docs {
		items = append(items, model.OrderItem(d))
	}
	return items, nil
}
