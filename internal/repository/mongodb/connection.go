package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/storefront-server/internal/model"
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	productsCollection   = "products"
	ordersCollection     = "orders"

	connectTimeout    = 10 * time.Second
	disconnectTimeout = 5 * time.Second
)

// Connection holds a mongo client bound to one database.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewConnection connects to uri, verifies the server is reachable and makes
// sure the indexes the repositories depend on exist.
func NewConnection(ctx context.Context, uri, dbName string) (*Connection, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	conn := &Connection{client: client, db: client.Database(dbName)}
	if err := conn.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return conn, nil
}

// NewConnectionFromDatabase wraps an existing database handle. Close is a no-op
// for connections built this way.
func NewConnectionFromDatabase(db *mongo.Database) *Connection {
	return &Connection{db: db}
}

// EnsureIndexes creates the unique and lookup indexes.
func (c *Connection) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		categoriesCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		productsCollection: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
			{Keys: bson.D{{Key: "verified", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		ordersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := c.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", name, err)
		}
	}

	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("mongo client is nil")
	}
	return c.client.Ping(ctx, nil)
}

func (c *Connection) Close() error {
	if c.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	return c.client.Disconnect(ctx)
}

func (c *Connection) collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// storeError translates driver errors into store sentinels and wraps the rest.
func storeError(msg string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments), errors.Is(err, model.ErrNotFound):
		return model.ErrNotFound
	case errors.Is(err, model.ErrConflict), mongo.IsDuplicateKeyError(err):
		return model.ErrConflict
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// expectMatched returns ErrNotFound when the filter matched no document.
func expectMatched(res *mongo.UpdateResult) error {
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
