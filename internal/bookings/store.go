// Package bookings stores service bookings and enforces that a (date, time)
// slot is held by at most one active booking.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/aws"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore"
	"github.com/imrishuroy/go-storefront-admin/internal/refnum"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
	"github.com/imrishuroy/go-storefront-admin/internal/slots"
)

// MaxListLimit caps the page size of List.
const MaxListLimit = 1000

var (
	errNotFound        = apperr.NotFound("Booking not found")
	errSlotUnavailable = apperr.Conflict("Time slot not available")
)

// ServiceFinder resolves the service being booked.
type ServiceFinder interface {
	Get(ctx context.Context, id string) (*services.Service, error)
}

// Filter selects bookings for List.
type Filter struct {
	Status string
	Date   string
	Skip   int
	Limit  int
}

// Store encapsulates operations on the bookings table and its slot
// reservations.
type Store struct {
	client   aws.DynamoDBAPI
	docs     *docstore.Collection[Booking]
	slots    *slots.Store
	services ServiceFinder
	refs     *refnum.Generator
	nowFunc  func() time.Time
	newID    func() string
}

// NewStore creates a new bookings Store.
func NewStore(client aws.DynamoDBAPI, tableName string, slotStore *slots.Store, finder ServiceFinder, refs *refnum.Generator) *Store {
	return &Store{
		client:   client,
		docs:     docstore.NewCollection[Booking](client, tableName, "id"),
		slots:    slotStore,
		services: finder,
		refs:     refs,
		nowFunc:  time.Now,
		newID:    uuid.NewString,
	}
}

// List returns bookings ordered by date then time.
func (s *Store) List(ctx context.Context, f Filter) ([]Booking, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	return docstore.Apply(all, docstore.Query[Booking]{
		Match: func(b Booking) bool {
			return (f.Status == "" || b.Status == f.Status) &&
				(f.Date == "" || b.Date == f.Date)
		},
		Less: func(a, b Booking) bool {
			if a.Date != b.Date {
				return a.Date < b.Date
			}
			return a.Time < b.Time
		},
		Skip:  f.Skip,
		Limit: docstore.ClampLimit(f.Limit, MaxListLimit),
	}), nil
}

// Get fetches a booking by id.
func (s *Store) Get(ctx context.Context, id string) (*Booking, error) {
	b, err := s.docs.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return b, nil
}

// AvailableSlots returns the catalogue slots on date not held by an active
// booking, in catalogue order.
func (s *Store) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	all, err := s.docs.All(ctx)
	if err != nil {
		return nil, err
	}
	taken := map[string]bool{}
	for _, b := range all {
		if b.Date == date && IsActive(b.Status) {
			taken[b.Time] = true
		}
	}
	free := make([]string, 0, len(dailySlots))
	for _, slot := range dailySlots {
		if !taken[slot] {
			free = append(free, slot)
		}
	}
	return free, nil
}

// Create books a slot for a service. The booking and its slot reservation
// are written in one transaction, so a concurrent request for the same slot
// fails with a conflict instead of double booking.
func (s *Store) Create(ctx context.Context, in NewBooking) (*Booking, error) {
	if !IsSlot(in.Time) {
		return nil, apperr.Validation(fmt.Sprintf("time: %q is not a bookable slot", in.Time))
	}
	svc, err := s.services.Get(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	held, err := s.slots.Get(ctx, in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if held != nil {
		return nil, errSlotUnavailable
	}

	now := s.nowFunc().UTC()
	b := Booking{
		ID:            s.newID(),
		BookingNumber: s.refs.Generate(refnum.BookingPrefix),
		ServiceID:     svc.ID,
		ServiceName:   svc.Title,
		ServicePrice:  svc.Price,
		Date:          in.Date,
		Time:          in.Time,
		Customer:      in.Customer,
		Notes:         in.Notes,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	put, err := s.docs.InsertItem(b)
	if err != nil {
		return nil, err
	}
	reserve, err := s.slots.AcquireItem(b.Date, b.Time, b.ID)
	if err != nil {
		return nil, err
	}
	if err := docstore.Transact(ctx, s.client, put, reserve); err != nil {
		var canceled *docstore.CanceledError
		if errors.As(err, &canceled) && canceled.ConditionFailed(1) {
			return nil, errSlotUnavailable
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &b, nil
}

// UpdateStatus sets any status. Leaving the active set frees the slot;
// re-entering it takes the slot again and fails with a conflict when another
// booking holds it.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) (*Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	wasActive := IsActive(b.Status)
	b.Status = status
	b.UpdatedAt = s.nowFunc().UTC()

	var slotItem *types.TransactWriteItem
	switch {
	case wasActive && !IsActive(status):
		release := s.slots.ReleaseItem(b.Date, b.Time)
		slotItem = &release
	case !wasActive && IsActive(status):
		reserve, err := s.slots.AcquireItem(b.Date, b.Time, b.ID)
		if err != nil {
			return nil, err
		}
		slotItem = &reserve
	}
	if slotItem == nil {
		if err := s.docs.Replace(ctx, *b); err != nil {
			return nil, translate(err)
		}
		return b, nil
	}

	put, err := s.docs.ReplaceItem(*b)
	if err != nil {
		return nil, err
	}
	if err := docstore.Transact(ctx, s.client, put, *slotItem); err != nil {
		return nil, s.canceled(err, "update booking")
	}
	return b, nil
}

// Delete permanently removes a booking and releases its slot if it was active.
func (s *Store) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !IsActive(b.Status) {
		return translate(s.docs.Delete(ctx, id))
	}
	err = docstore.Transact(ctx, s.client,
		s.docs.DeleteItem(id, true),
		s.slots.ReleaseItem(b.Date, b.Time),
	)
	if err != nil {
		return s.canceled(err, "delete booking")
	}
	return nil
}

// canceled maps a failed booking+slot transaction: item 0 is the booking,
// item 1 the reservation.
func (s *Store) canceled(err error, op string) error {
	var c *docstore.CanceledError
	if errors.As(err, &c) {
		switch {
		case c.ConditionFailed(0):
			return errNotFound
		case c.ConditionFailed(1):
			return errSlotUnavailable
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func translate(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return errNotFound
	}
	return err
}
