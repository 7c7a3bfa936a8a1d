package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore/docstoretest"
	"github.com/imrishuroy/go-storefront-admin/internal/refnum"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) tick() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestStore(db *docstoretest.Dynamo) (*Store, *clock) {
	clk := &clock{t: time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)}
	s := NewStore(db, "orders", &refnum.Generator{Now: clk.now})
	s.nowFunc = clk.now
	return s, clk
}

func sampleOrder(total float64) NewOrder {
	return NewOrder{
		Items: []Item{{ProductID: "test-123", Name: "Test Product", Price: 19.99, Quantity: 2, Image: "img.jpg"}},
		Customer: Customer{FirstName: "Test", LastName: "Customer", Email: "test@example.com", Phone: "+39123456789"},
		Shipping: Shipping{Address: "Via Test 123", City: "Milano", ZipCode: "20100"},
		Total:    &total,
	}
}

func TestCreate(t *testing.T) {
	s, _ := newTestStore(docstoretest.New())
	ctx := context.Background()

	o, err := s.Create(ctx, sampleOrder(39.98))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "ORD-20240131-000000", o.OrderNumber)
	assert.Equal(t, 39.98, o.Total)
	assert.Equal(t, o.CreatedAt, o.UpdatedAt)

	got, err := s.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, *o, *got)
}

func TestCreate_TotalIsNotRecomputed(t *testing.T) {
	s, _ := newTestStore(docstoretest.New())

	o, err := s.Create(context.Background(), sampleOrder(1.00))
	require.NoError(t, err)
	assert.Equal(t, 1.00, o.Total)
}

func TestUpdateStatus(t *testing.T) {
	s, clk := newTestStore(docstoretest.New())
	ctx := context.Background()

	o, err := s.Create(ctx, sampleOrder(10))
	require.NoError(t, err)

	clk.tick()
	updated, err := s.UpdateStatus(ctx, o.ID, StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, updated.Status)
	assert.Equal(t, clk.t, updated.UpdatedAt)
	assert.Equal(t, o.Items, updated.Items)
	assert.Equal(t, o.OrderNumber, updated.OrderNumber)

	// no transition table: back to pending is allowed
	_, err = s.UpdateStatus(ctx, o.ID, StatusPending)
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, "missing", StatusConfirmed)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.EqualError(t, err, "Order not found")
}

func TestList_NewestFirstWithStatusFilter(t *testing.T) {
	s, clk := newTestStore(docstoretest.New())
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		clk.tick()
		o, err := s.Create(ctx, sampleOrder(float64(i)))
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := s.UpdateStatus(ctx, ids[1], StatusShipped)
	require.NoError(t, err)

	all, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, ids[3], all[0].ID)
	assert.Equal(t, ids[0], all[3].ID)

	pending, err := s.List(ctx, Filter{Status: StatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	shipped, err := s.List(ctx, Filter{Status: StatusShipped})
	require.NoError(t, err)
	require.Len(t, shipped, 1)
	assert.Equal(t, ids[1], shipped[0].ID)
}

func TestStats_Empty(t *testing.T) {
	s, _ := newTestStore(docstoretest.New())

	st, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalOrders)
	assert.Equal(t, 0, st.PendingOrders)
	assert.Equal(t, 0.0, st.TotalRevenue)
	assert.NotNil(t, st.RecentOrders)
	assert.Empty(t, st.RecentOrders)
}

func TestStats(t *testing.T) {
	s, clk := newTestStore(docstoretest.New())
	ctx := context.Background()

	var last string
	for i := 1; i <= 7; i++ {
		clk.tick()
		o, err := s.Create(ctx, sampleOrder(float64(i)*10))
		require.NoError(t, err)
		last = o.ID
		if i%2 == 0 {
			_, err = s.UpdateStatus(ctx, o.ID, StatusDelivered)
			require.NoError(t, err)
		}
	}

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, st.TotalOrders)
	assert.Equal(t, 4, st.PendingOrders)
	assert.InDelta(t, 280.0, st.TotalRevenue, 1e-9)
	require.Len(t, st.RecentOrders, RecentOrdersLimit)
	assert.Equal(t, last, st.RecentOrders[0].ID)
}

func TestStoreErrorPropagates(t *testing.T) {
	db := docstoretest.New()
	s, _ := newTestStore(db)
	db.Err = errors.New("dynamodb unavailable")

	_, err := s.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))

	_, err = s.Create(context.Background(), sampleOrder(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}
