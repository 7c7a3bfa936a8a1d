// Package slots keeps one reservation per booked slot so that at most one
// active booking can hold a given date and time.
package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore"
)

// Store encapsulates reservation operations against DynamoDB.
type Store struct {
	docs    *docstore.Collection[Reservation]
	nowFunc func() time.Time
}

// NewStore returns a Store bound to tableName.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		docs:    docstore.NewCollection[Reservation](client, tableName, KeyAttr),
		nowFunc: time.Now,
	}
}

func (s *Store) reservation(date, clock, bookingID string) Reservation {
	return Reservation{
		SlotKey:   Key(date, clock),
		Date:      date,
		Time:      clock,
		BookingID: bookingID,
		CreatedAt: s.nowFunc().UTC(),
	}
}

// Acquire reserves the slot for bookingID.
// Returns (true, nil) if the reservation was created and (false, nil) if the
// slot is already held.
func (s *Store) Acquire(ctx context.Context, date, clock, bookingID string) (bool, error) {
	err := s.docs.Insert(ctx, s.reservation(date, clock, bookingID))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, docstore.ErrConditionFailed):
		return false, nil
	default:
		return false, fmt.Errorf("acquire slot: %w", err)
	}
}

// AcquireItem builds the transactional form of Acquire. The transaction is
// cancelled when the slot is already held.
func (s *Store) AcquireItem(date, clock, bookingID string) (types.TransactWriteItem, error) {
	return s.docs.InsertItem(s.reservation(date, clock, bookingID))
}

// ReleaseItem builds a transactional delete of the slot reservation. It does
// not fail when the reservation is already gone.
func (s *Store) ReleaseItem(date, clock string) types.TransactWriteItem {
	return s.docs.DeleteItem(Key(date, clock), false)
}

// Get retrieves the reservation for a slot. If the slot is free, returns (nil, nil).
func (s *Store) Get(ctx context.Context, date, clock string) (*Reservation, error) {
	r, err := s.docs.Get(ctx, Key(date, clock))
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
