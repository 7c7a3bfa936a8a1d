package blog

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
const MaxListLimit = 1000

var errNotFound = apperr.NotFound("Blog post not found")

// Filter selects posts for List. Published is matched exactly when set.
type Filter struct {
	Published *bool
	Skip      int
	Limit     int
}

// Store encapsulates operations on the blog table.
type Store struct {
	docs    *docstore.Collection[Post]
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new blog Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		docs:    docstore.NewCollection[Post](client, tableName, "id"),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// List returns posts newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Post, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Post]{
		Match: func(p Post) bool {
			return f.Published == nil || p.Published == *f.Published
		},
		Less:  func(a, b Post) bool { return a.CreatedAt.After(b.CreatedAt) },
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches a post by id.
func (s *Store) Get(ctx context.Context, id string) (*Post, error) {
	p, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// Create persists a new post.
func (s *Store) Create(ctx context.Context, in NewPost) (*Post, error) {
	now := s.nowFunc().UTC()
	published := true
	if in.Published != nil {
		published = *in.Published
	}
	p := Post{
		ID:        s.newID(),
		Title:     in.Title,
		Excerpt:   in.Excerpt,
		Content:   in.Content,
		Author:    in.Author,
		Date:      in.Date,
		Image:     in.Image,
		Category:  in.Category,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docs.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("create blog post: %w", err)
	}
	return &p, nil
}

// Update applies a partial update and refreshes updatedAt.
func (s *Store) Update(ctx context.Context, id string, patch Patch) (*Post, error) {
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

// Delete permanently removes a post.
func (s *Store) Delete(ctx context.Context, id string) error {
	return translate(s.docs.Delete(ctx, id))
}

// Upsert writes a post as is. Used for seeding.
func (s *Store) Upsert(ctx context.Context, p Post) error {
	return s.docs.Upsert(ctx, p)
}

// Clear deletes every post. Used when reseeding.
func (s *Store) Clear(ctx context.Context) (int, error) {
	return s.docs.Clear(ctx)
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
