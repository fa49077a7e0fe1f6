package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/storefront-server/internal/model"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	messages []published
	err      error
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, published{subject: subj, data: data})
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	publisher := NewPublisher(conn, "storefront")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	publisher.now = func() time.Time { return at }
	orderID := uuid.New()

	err := publisher.Publish(context.Background(), model.Event{
		Type:    model.EventOrderCreated,
		Payload: map[string]any{"order_id": orderID, "amount": 3000},
	})
	require.NoError(t, err)
	require.Len(t, conn.messages, 1)
	assert.Equal(t, "storefront.order.created", conn.messages[0].subject)

	var got struct {
		Type       string         `json:"type"`
		OccurredAt time.Time      `json:"occurred_at"`
		Payload    map[string]any `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(conn.messages[0].data, &got))
	assert.Equal(t, model.EventOrderCreated, got.Type)
	assert.True(t, at.Equal(got.OccurredAt))
	assert.Equal(t, orderID.String(), got.Payload["order_id"])
	assert.Equal(t, float64(3000), got.Payload["amount"])
}

func TestPublisher_Subject(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{name: "with prefix", prefix: "shop", want: "shop.product.approved"},
		{name: "without prefix", prefix: "", want: "product.approved"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPublisher(&fakeConn{}, tt.prefix).subject(model.EventProductApproved))
		})
	}
}

func TestPublisher_Errors(t *testing.T) {
	t.Run("connection error", func(t *testing.T) {
		publisher := NewPublisher(&fakeConn{err: errors.New("nats: connection closed")}, "storefront")

		err := publisher.Publish(context.Background(), model.Event{Type: model.EventOrderStatusUpdated})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to publish order.status_updated event")
	})

	t.Run("unencodable payload", func(t *testing.T) {
		conn := &fakeConn{}
		publisher := NewPublisher(conn, "storefront")

		err := publisher.Publish(context.Background(), model.Event{Type: model.EventOrderCreated, Payload: make(chan int)})
		require.Error(t, err)
		assert.Empty(t, conn.messages)
	})

	t.Run("cancelled context", func(t *testing.T) {
		conn := &fakeConn{}
		publisher := NewPublisher(conn, "storefront")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := publisher.Publish(ctx, model.Event{Type: model.EventOrderCreated})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, conn.messages)
	})
}
