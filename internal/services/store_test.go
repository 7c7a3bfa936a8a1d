package services

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

func newTestStore() *Store {
	s := NewStore(docstoretest.New(), "services")
	s.nowFunc = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestServiceLifecycle(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	svc, err := s.Create(ctx, NewService{Title: "Consulenza", Category: "nutrizione", Price: amount(60), Duration: "60 min"})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)

	got, err := s.Get(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, *svc, *got)

	s.nowFunc = func() time.Time { return time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC) }
	price := 65.0
	updated, err := s.Update(ctx, svc.ID, Patch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 65.0, updated.Price)
	assert.Equal(t, svc.Title, updated.Title)
	assert.Equal(t, svc.Duration, updated.Duration)
	assert.True(t, updated.UpdatedAt.After(svc.UpdatedAt))

	require.NoError(t, s.Delete(ctx, svc.ID))
	_, err = s.Get(ctx, svc.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Service not found", err.Error())
}

func TestList_ClampsLimit(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	for i := 0; i < 105; i++ {
		_, err := s.Create(ctx, NewService{Title: fmt.Sprintf("s%d", i), Category: "c", Price: amount(1)})
		require.NoError(t, err)
	}

	got, err := s.List(ctx, Filter{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, got, MaxListLimit)

	got, err = s.List(ctx, Filter{Limit: 3, Skip: 104})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func amount(v float64) *float64 { return &v }
