package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore/docstoretest"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestStore(t *testing.T) (*Store, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := NewStore(docstoretest.New(), "products")
	s.nowFunc = clk.now
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("p-%d", n)
	}
	return s, clk
}

func TestCreate_Defaults(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, NewProduct{Name: "X", Category: "c", Price: amount(10), Image: "i", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID)
	assert.True(t, p.InStock)
	assert.False(t, p.Featured)
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, *p, *got)
}

func TestCreate_ExtendedFields(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	outOfStock := false

	p, err := s.Create(ctx, NewProduct{
		Name: "Omega 3", Category: "integratori", Price: amount(29.9), Image: "omega.jpg", Description: "d", InStock: &outOfStock,
		Brand: "Metis", GlutenFree: true, Benefits: []string{"cuore"},
		NutritionalInfo: []NutritionalValue{{Nutrient: "EPA", PerDose: "500mg", VNR: "-"}},
	})
	require.NoError(t, err)
	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.InStock)
	assert.Equal(t, "Metis", got.Brand)
	assert.True(t, got.GlutenFree)
	assert.Equal(t, []string{"cuore"}, got.Benefits)
	assert.Equal(t, "500mg", got.NutritionalInfo[0].PerDose)
}

func TestUpdate_OnlyTouchesSuppliedFields(t *testing.T) {
	s, clk := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, NewProduct{Name: "X", Category: "c", Price: amount(10), Image: "i", Description: "d"})
	require.NoError(t, err)

	clk.t = clk.t.Add(time.Hour)
	price := 39.99
	updated, err := s.Update(ctx, p.ID, Patch{Price: &price})
	require.NoError(t, err)

	want := *p
	want.Price = 39.99
	want.UpdatedAt = clk.t
	assert.Equal(t, want, *updated)

	got, err := s.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestUpdate_EmptyPatchRefreshesUpdatedAt(t *testing.T) {
	s, clk := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, NewProduct{Name: "X", Category: "c", Price: amount(5)})
	require.NoError(t, err)
	clk.t = clk.t.Add(time.Minute)

	updated, err := s.Update(ctx, p.ID, Patch{})
	require.NoError(t, err)
	assert.Equal(t, clk.t, updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
}

func TestNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Get(ctx, "nope")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.EqualError(t, err, "Product not found")

	_, err = s.Update(ctx, "nope", Patch{})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	assert.True(t, apperr.Is(s.Delete(ctx, "nope"), apperr.KindNotFound))
}

func TestDelete(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p, err := s.Create(ctx, NewProduct{Name: "X", Category: "c", Price: amount(5)})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, p.ID))

	_, err = s.Get(ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestList_FilterAndLimit(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 120; i++ {
		_, err := s.Create(ctx, NewProduct{Name: fmt.Sprintf("p%d", i), Category: "c", Price: amount(1), Featured: i%10 == 0})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, Filter{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, all, MaxListLimit, "limit is clamped")

	for _, l := range []int{1, 5, 100} {
		got, err := s.List(ctx, Filter{Limit: l})
		require.NoError(t, err)
		assert.Len(t, got, l)
	}

	featured := true
	got, err := s.List(ctx, Filter{Featured: &featured})
	require.NoError(t, err)
	assert.Len(t, got, 12)
	for _, p := range got {
		assert.True(t, p.Featured)
	}

	notFeatured := false
	got, err = s.List(ctx, Filter{Featured: &notFeatured, Skip: 100})
	require.NoError(t, err)
	assert.Len(t, got, 8)
}

func amount(v float64) *float64 { return &v }
