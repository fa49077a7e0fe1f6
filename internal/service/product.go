package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront-server/internal/apierrors"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/model"
)

const photoKeyPrefix = "products/"

type Product struct {
	productStore  model.ProductStore
	categoryStore model.CategoryStore
	storage       model.Storage
	events        model.EventPublisher
	maxPhotoSize  int64
	logger        *logger.Logger
}

func NewProduct(
	productStore model.ProductStore,
	categoryStore model.CategoryStore,
	storage model.Storage,
	events model.EventPublisher,
	maxPhotoSize int64,
	logger *logger.Logger,
) *Product {
	return &Product{
		productStore:  productStore,
		categoryStore: categoryStore,
		storage:       storage,
		events:        events,
		maxPhotoSize:  maxPhotoSize,
		logger:        logger,
	}
}

// Create stores a new unverified product owned by owner.
func (s *Product) Create(ctx context.Context, owner model.User, params model.ProductParams, photo *model.Photo) (model.Product, error) {
	if params.Name == nil || strings.TrimSpace(*params.Name) == "" ||
		params.Description == nil || strings.TrimSpace(*params.Description) == "" ||
		params.Price == nil || *params.Price == 0 ||
		params.CategoryID == nil {
		return model.Product{}, apierrors.NewErrMissingFields()
	}
	if err := s.checkPhoto(photo); err != nil {
		return model.Product{}, err
	}

	now := time.Now()
	product := model.Product{
		ID:        uuid.New(),
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(ctx, &product, params); err != nil {
		return model.Product{}, err
	}

	if photo != nil {
		if err := s.uploadPhoto(ctx, &product, photo); err != nil {
			return model.Product{}, err
		}
	}

	created, err := s.productStore.Create(ctx, product)
	if err != nil {
		if product.HasPhoto() {
			s.deletePhoto(ctx, product)
		}
		s.logger.Error("Product service: failed to create product",
			"owner_id", owner.ID,
			"error", err.Error())
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info("Product service: product uploaded",
		"product_id", created.ID,
		"owner_id", owner.ID)

	return created, nil
}

func (s *Product) Get(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productStore.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, apierrors.NewErrProductNotFound()
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

// Photo opens the stored photo of the product and returns its content type.
func (s *Product) Photo(ctx context.Context, id uuid.UUID) (io.ReadCloser, string, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !product.HasPhoto() {
		return nil, "", apierrors.NewErrPhotoNotFound()
	}

	reader, err := s.storage.Download(ctx, product.PhotoKey)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", apierrors.NewErrPhotoNotFound()
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to download photo: %w", err)
	}

	return reader, product.PhotoContentType, nil
}

// Update applies the non-nil fields of params and replaces the photo if one
// is given. Only the owner or an admin may update a product.
func (s *Product) Update(ctx context.Context, actor model.User, id uuid.UUID, params model.ProductParams, photo *model.Photo) (model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if !canModify(actor, product) {
		return model.Product{}, apierrors.NewErrNotProductOwner()
	}
	if err := s.checkPhoto(photo); err != nil {
		return model.Product{}, err
	}

	if err := s.apply(ctx, &product, params); err != nil {
		return model.Product{}, err
	}
	if photo != nil {
		if err := s.uploadPhoto(ctx, &product, photo); err != nil {
			return model.Product{}, err
		}
	}
	product.UpdatedAt = time.Now()

	updated, err := s.productStore.Update(ctx, product)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, apierrors.NewErrProductNotFound()
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info("Product service: product updated",
		"product_id", id,
		"actor_id", actor.ID)

	return updated, nil
}

// Delete removes a product on behalf of its owner or an admin.
func (s *Product) Delete(ctx context.Context, actor model.User, id uuid.UUID) (model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	if !canModify(actor, product) {
		return model.Product{}, apierrors.NewErrNotProductOwner()
	}

	return product, s.remove(ctx, product)
}

// AdminDelete removes any product.
func (s *Product) AdminDelete(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	return product, s.remove(ctx, product)
}

// Approve marks the product verified so it appears in the public catalog.
func (s *Product) Approve(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	err = s.productStore.SetVerified(ctx, id, true)
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, apierrors.NewErrProductNotFound()
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to approve product: %w", err)
	}
	product.Verified = true

	s.logger.Info("Product service: product approved", "product_id", id)
	publishEvent(ctx, s.events, s.logger, model.Event{
		Type: model.EventProductApproved,
		Payload: map[string]any{
			"product_id": product.ID,
			"owner_id":   product.OwnerID,
			"name":       product.Name,
		},
	})

	return product, nil
}

func (s *Product) ListVerified(ctx context.Context) ([]model.Product, error) {
	products, err := s.productStore.ListVerified(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list verified products: %w", err)
	}

	return products, nil
}

func (s *Product) ListUnverified(ctx context.Context) ([]model.Product, error) {
	products, err := s.productStore.ListUnverified(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unverified products: %w", err)
	}

	return products, nil
}

func (s *Product) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Product, error) {
	products, err := s.productStore.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by owner: %w", err)
	}
	if len(products) == 0 {
		return nil, apierrors.NewErrNoUploadedProducts()
	}

	return products, nil
}

func (s *Product) apply(ctx context.Context, product *model.Product, params model.ProductParams) error {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return apierrors.NewErrValidation("name must not be empty")
		}
		product.Name = name
	}
	if params.Description != nil {
		product.Description = strings.TrimSpace(*params.Description)
	}
	if params.Price != nil {
		if *params.Price <= 0 {
			return apierrors.NewErrValidation("price must be positive")
		}
		product.Price = *params.Price
	}
	if params.Stock != nil {
		if *params.Stock < 0 {
			return apierrors.NewErrValidation("stock must not be negative")
		}
		product.Stock = *params.Stock
	}
	if params.CategoryID != nil && *params.CategoryID != product.CategoryID {
		_, err := s.categoryStore.GetByID(ctx, *params.CategoryID)
		if errors.Is(err, model.ErrNotFound) {
			return apierrors.NewErrCategoryNotFound()
		}
		if err != nil {
			return fmt.Errorf("failed to get category by id: %w", err)
		}
		product.CategoryID = *params.CategoryID
	}

	return nil
}

func (s *Product) checkPhoto(photo *model.Photo) error {
	if photo != nil && photo.Size > s.maxPhotoSize {
		return apierrors.NewErrPhotoTooLarge()
	}
	return nil
}

func (s *Product) uploadPhoto(ctx context.Context, product *model.Product, photo *model.Photo) error {
	key := photoKeyPrefix + product.ID.String()
	if err := s.storage.Upload(ctx, key, photo.Reader, photo.Size, photo.ContentType); err != nil {
		s.logger.Error("Product service: failed to upload photo",
			"product_id", product.ID,
			"error", err.Error())
		return fmt.Errorf("failed to upload photo: %w", err)
	}

	product.PhotoKey = key
	product.PhotoContentType = photo.ContentType

	return nil
}

func (s *Product) remove(ctx context.Context, product model.Product) error {
	err := s.productStore.Delete(ctx, product.ID)
	if errors.Is(err, model.ErrNotFound) {
		return apierrors.NewErrProductNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product.HasPhoto() {
		s.deletePhoto(ctx, product)
	}

	s.logger.Info("Product service: product deleted", "product_id", product.ID)

	return nil
}

func (s *Product) deletePhoto(ctx context.Context, product model.Product) {
	if err := s.storage.Delete(ctx, product.PhotoKey); err != nil {
		s.logger.Warn("Product service: failed to delete photo",
			"product_id", product.ID,
			"key", product.PhotoKey,
			"error", err.Error())
	}
}

func canModify(actor model.User, product model.Product) bool {
	return actor.ID == product.OwnerID || actor.Role.IsAdmin()
}
