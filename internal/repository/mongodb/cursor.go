package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

type document[M any] interface {
	model() (M, error)
}

// decodeAll drains cur and converts every document. The cursor is closed.
func decodeAll[M any, D document[M]](ctx context.Context, cur *mongo.Cursor, kind string) ([]M, error) {
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
	}

	items := make([]M, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.model()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
