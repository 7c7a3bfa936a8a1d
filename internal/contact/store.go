package contact

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

var errNotFound = apperr.NotFound("Message not found")

// Filter selects messages for List.
type Filter struct {
	Status string
	Skip   int
	Limit  int
}

// Store encapsulates operations on the contact messages table.
type Store struct {
	docs    *docstore.Collection[Message]
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new contact Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		docs:    docstore.NewCollection[Message](client, tableName, "id"),
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

// List returns messages newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Message, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Message]{
		Match: func(m Message) bool {
			return f.Status == "" || m.Status == f.Status
		},
		Less:  func(a, b Message) bool { return a.CreatedAt.After(b.CreatedAt) },
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches a message by id.
func (s *Store) Get(ctx context.Context, id string) (*Message, error) {
	m, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

// Create stores a new message with status "new".
func (s *Store) Create(ctx context.Context, in NewMessage) (*Message, error) {
	now := s.nowFunc().UTC()
	m := Message{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		Status:    StatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.docs.Insert(ctx, m); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return &m, nil
}

// UpdateStatus sets the message status, e.g. "read" or "replied".
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Message, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Status = status
	m.UpdatedAt = s.nowFunc().UTC()
	if err := s.docs.Replace(ctx, *m); err != nil {
		return nil, translate(err)
	}
	return m, nil
}

// Delete permanently removes a message.
func (s *Store) Delete(ctx context.Context, id string) error {
	return translate(s.docs.Delete(ctx, id))
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
