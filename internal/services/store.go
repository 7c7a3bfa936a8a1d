package services

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

var errNotFound = apperr.NotFound("Service not found")

// Filter pages through services.
type Filter struct {
	Skip  int
	Limit int
}

// Store encapsulates operations on the services table.
type Store struct {
	docs    *docstore.Collection[Service]
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new services Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		docs:    docstore.NewCollection[Service](client, tableName, "id"),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

func (s *Store) List(ctx context.Context, f Filter) ([]Service, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Service]{
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches a service by id. Booking creation relies on the NotFound
// detail "Service not found".
func (s *Store) Get(ctx context.Context, id string) (*Service, error) {
	svc, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return svc, nil
}

func (s *Store) Create(ctx context.Context, in NewService) (*Service, error) {
	now := s.nowFunc().UTC()
	svc := Service{
		ID:          s.newID(),
		Title:       in.Title,
		Category:    in.Category,
		Price:       *in.Price,
		Duration:    in.Duration,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.docs.Insert(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return &svc, nil
}

func (s *Store) Update(ctx context.Context, id string, patch Patch) (*Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(svc)
	svc.UpdatedAt = s.nowFunc().UTC()
	if err := s.docs.Replace(ctx, *svc); err != nil {
		return nil, translate(err)
	}
	return svc, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return translate(s.docs.Delete(ctx, id))
}

// Upsert writes a service as is, keeping its id. Used for seeding.
func (s *Store) Upsert(ctx context.Context, svc Service) error {
	return s.docs.Upsert(ctx, svc)
}

// Clear deletes every service. Used when reseeding.
func (s *Store) Clear(ctx context.Context) (int, error) {
	return s.docs.Clear(ctx)
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
