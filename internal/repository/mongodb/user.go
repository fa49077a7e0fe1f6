package mongodb

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/storefront-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "failed to get user by email")
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, "failed to get user by id")
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	doc := newUserDoc(user)
	if _, err := r.db.collection(usersCollection).InsertOne(ctx, doc); err != nil {
		return model.User{}, storeError("failed to create user", err)
	}

	return doc.model()
}

func (r *UserRepository) Update(ctx context.Context, user model.User) (model.User, error) {
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"last_name":  user.LastName,
		"email":      user.Email,
		"updated_at": user.UpdatedAt,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc userDoc
	err := r.db.collection(usersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": user.ID.String()}, update, opts).
		Decode(&doc)
	if err != nil {
		return model.User{}, storeError("failed to update user", err)
	}

	return doc.model()
}

func (r *UserRepository) PushPurchases(ctx context.Context, userID uuid.UUID, purchases []model.Purchase) error {
	return pushPurchases(ctx, r.db, userID, purchases)
}

// pushPurchases appends purchases to the user document. The same records
// pushed twice are stored twice.
func pushPurchases(ctx context.Context, db *Connection, userID uuid.UUID, purchases []model.Purchase) error {
	update := bson.M{
		"$push": bson.M{"purchases": bson.M{"$each": newPurchaseDocs(purchases)}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	res, err := db.collection(usersCollection).UpdateByID(ctx, userID.String(), update)
	if err != nil {
		return storeError("failed to push purchases", err)
	}

	return expectMatched(res)
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, msg string) (model.User, error) {
	var doc userDoc
	if err := r.db.collection(usersCollection).FindOne(ctx, filter).Decode(&doc); err != nil {
		return model.User{}, storeError(msg, err)
	}

	return doc.model()
}
