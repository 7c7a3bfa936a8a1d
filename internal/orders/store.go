package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore"
	"github.com/imrishuroy/go-storefront-admin/internal/refnum"
)

// MaxListLimit caps the page size of List.
const MaxListLimit = 1000

// RecentOrdersLimit is the number of orders reported by Stats.
const RecentOrdersLimit = 5

var errNotFound = apperr.NotFound("Order not found")

// Filter selects orders for List.
type Filter struct {
	Status string
	Skip   int
	Limit  int
}

// Store encapsulates operations on the orders table.
type Store struct {
	docs    *docstore.Collection[Order]
	refs    *refnum.Generator
	nowFunc func() time.Time
	newID   func() string
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string, refs *refnum.Generator) *Store {
	return &Store{
		docs:    docstore.NewCollection[Order](client, tableName, "id"),
		refs:    refs,
		nowFunc: time.Now,
		newID:   uuid.NewString,
	}
}

func newestFirst(a, b Order) bool { return a.CreatedAt.After(b.CreatedAt) }

// List returns orders newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Order, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Order]{
		Match: func(o Order) bool {
			return f.Status == "" || o.Status == f.Status
		},
		Less:  newestFirst,
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches an order by id.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

// Create persists a pending order with a fresh order number. The total is
// stored as given.
func (s *Store) Create(ctx context.Context, in NewOrder) (*Order, error) {
	now := s.nowFunc().UTC()
	o := Order{
		ID:          s.newID(),
		OrderNumber: s.refs.Generate(refnum.OrderPrefix),
		Items:       in.Items,
		Customer:    in.Customer,
		Shipping:    in.Shipping,
		Total:       *in.Total,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.docs.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &o, nil
}

// UpdateStatus sets any status; no transition table is enforced.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Status = status
	o.UpdatedAt = s.nowFunc().UTC()
	if err := s.docs.Replace(ctx, *o); err != nil {
		return nil, translate(err)
	}
	return o, nil
}

// Delete permanently removes an order.
func (s *Store) Delete(ctx context.Context, id string) error {
	return translate(s.docs.Delete(ctx, id))
}

// Stats computes all-time totals. Revenue is the raw sum of order totals.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	st := &Stats{TotalOrders: len(all)}
	for _, o := range all {
		if o.Status == StatusPending {
			st.PendingOrders++
		}
		st.TotalRevenue += o.Total
	}
	st.RecentOrders = docstore.Apply(all, docstore.Query[Order]{
		Less:  newestFirst,
		Limit: RecentOrdersLimit,
	})
	return st, nil
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
