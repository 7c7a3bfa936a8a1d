package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore"
)

// MaxListLimit caps the page size of List.
const MaxListLimit = 100

var errNotFound = apperr.NotFound("Product not found")

// Filter selects products for List. Featured is matched exactly when set.
type Filter struct {
	Featured *bool
	Skip     int
	Limit    int
}

// Store encapsulates operations on the products table.
type Store struct {
	docs    *docstore.Collection[Product]
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new products Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		docs:    docstore.NewCollection[Product](client, tableName, "id"),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// List returns products in storage order, at most MaxListLimit per call.
func (s *Store) List(ctx context.Context, f Filter) ([]Product, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Product]{
		Match: func(p Product) bool {
			return f.Featured == nil || p.Featured == *f.Featured
		},
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches a product by id.
func (s *Store) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Create persists a new product with a generated id.
func (s *Store) Create(ctx context.Context, in NewProduct) (*Product, error) {
	now := s.nowFunc().UTC()
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	p := Product{
		ID:              s.newID(),
		Name:            in.Name,
		Category:        in.Category,
		Price:           *in.Price,
		Image:           in.Image,
		Description:     in.Description,
		InStock:         inStock,
		Featured:        in.Featured,
		Subtitle:        in.Subtitle,
		Brand:           in.Brand,
		NetWeight:       in.NetWeight,
		Format:          in.Format,
		Flavor:          in.Flavor,
		GlutenFree:      in.GlutenFree,
		LactoseFree:     in.LactoseFree,
		FullDescription: in.FullDescription,
		Benefits:        in.Benefits,
		Ingredients:     in.Ingredients,
		FullIngredients: in.FullIngredients,
		NutritionalInfo: in.NutritionalInfo,
		Usage:           in.Usage,
		Warnings:        in.Warnings,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.docs.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// Update applies a partial update. updatedAt is refreshed even when no
// field changes. Concurrent updates are last-write-wins.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (*Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)
	p.UpdatedAt = s.nowFunc().UTC()
	if err := s.docs.Replace(ctx, *p); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Delete permanently removes a product.
func (s *Store) Delete(ctx context.Context, id string) error {
	return translate(s.docs.Delete(ctx, id))
}

// Upsert writes a product as is, keeping its id. Used for seeding.
func (s *Store) Upsert(ctx context.Context, p Product) error {
	return s.docs.Upsert(ctx, p)
}

// Clear deletes every product. Used when reseeding.
func (s *Store) Clear(ctx context.Context) (int, error) {
	return s.docs.Clear(ctx)
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
