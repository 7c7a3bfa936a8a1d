package bookings

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imrishuroy/go-storefront-admin/internal/apperr"
	"github.com/imrishuroy/go-storefront-admin/internal/docstore/docstoretest"
	"github.com/imrishuroy/go-storefront-admin/internal/refnum"
	"github.com/imrishuroy/go-storefront-admin/internal/services"
	"github.com/imrishuroy/go-storefront-admin/internal/slots"
)

const (
	bookingsTable = "bookings"
	slotsTable    = "booking_slots"
)

type fixture struct {
	db       *docstoretest.Dynamo
	store    *Store
	services *services.Store
	slots    *slots.Store
	service  *services.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := docstoretest.New().WithKey(slotsTable, slots.KeyAttr)
	svcStore := services.NewStore(db, "services")
	slotStore := slots.NewStore(db, slotsTable)
	now := func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	price := 60.0

	svc, err := svcStore.Create(context.Background(), services.NewService{
		Title: "Consulenza Nutrizionale", Category: "nutrizione", Price: &price, Duration: "60 min",
	})
	require.NoError(t, err)

	s := NewStore(db, bookingsTable, slotStore, svcStore, &refnum.Generator{Now: now})
	s.nowFunc = now
	return &fixture{db: db, store: s, services: svcStore, slots: slotStore, service: svc}
}

func (f *fixture) request(date, clock string) NewBooking {
	return NewBooking{
		ServiceID: f.service.ID,
		Date:      date,
		Time:      clock,
		Customer:  Customer{Name: "Mario Rossi", Email: "mario@example.com", Phone: "+39333000111"},
		Notes:     "prima visita",
	}
}

func TestCreate_SnapshotsService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.store.Create(ctx, f.request("2024-03-15", "10:00"))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "BKG-20240301-000000", b.BookingNumber)
	assert.Equal(t, "Consulenza Nutrizionale", b.ServiceName)
	assert.Equal(t, 60.0, b.ServicePrice)

	r, err := f.slots.Get(ctx, "2024-03-15", "10:00")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, b.ID, r.BookingID)

	// later edits to the service do not reach the booking
	price := 80.0
	_, err = f.services.Update(ctx, f.service.ID, services.Patch{Price: &price})
	require.NoError(t, err)
	got, err := f.store.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.ServicePrice)
}

func TestCreate_UnknownService(t *testing.T) {
	f := newFixture(t)
	req := f.request("2024-03-15", "10:00")
	req.ServiceID = "missing"

	_, err := f.store.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.EqualError(t, err, "Service not found")
	assert.Equal(t, 0, f.db.Len(bookingsTable))
}

func TestCreate_RejectsUnknownSlot(t *testing.T) {
	f := newFixture(t)

	_, err := f.store.Create(context.Background(), f.request("2024-03-15", "12:00"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreate_SlotConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Create(ctx, f.request("2024-03-15", "10:00"))
	require.NoError(t, err)

	_, err = f.store.Create(ctx, f.request("2024-03-15", "10:00"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.EqualError(t, err, "Time slot not available")

	// same time on another date is fine
	_, err = f.store.Create(ctx, f.request("2024-03-16", "10:00"))
	require.NoError(t, err)
}

// racingDB takes the slot right before the transaction commits, the way a
// concurrent request passing the same availability check would.
type racingDB struct {
	*docstoretest.Dynamo
	slots *slots.Store
}

func (r racingDB) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	if _, err := r.slots.Acquire(ctx, "2024-03-15", "11:00", "concurrent"); err != nil {
		return nil, err
	}
	return r.Dynamo.TransactWriteItems(ctx, params, optFns...)
}

func TestCreate_ConcurrentReservationWins(t *testing.T) {
	f := newFixture(t)
	f.store.client = racingDB{Dynamo: f.db, slots: f.slots}

	_, err := f.store.Create(context.Background(), f.request("2024-03-15", "11:00"))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, 0, f.db.Len(bookingsTable))

	r, err := f.slots.Get(context.Background(), "2024-03-15", "11:00")
	require.NoError(t, err)
	assert.Equal(t, "concurrent", r.BookingID)
}

func TestAvailableSlots_CancelFreesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := "2024-03-15"

	free, err := f.store.AvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, Slots(), free)

	first, err := f.store.Create(ctx, f.request(date, "09:30"))
	require.NoError(t, err)
	_, err = f.store.Create(ctx, f.request(date, "15:00"))
	require.NoError(t, err)

	free, err = f.store.AvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.NotContains(t, free, "09:30")
	assert.NotContains(t, free, "15:00")
	assert.Len(t, free, len(Slots())-2)

	_, err = f.store.UpdateStatus(ctx, first.ID, StatusCancelled)
	require.NoError(t, err)
	free, err = f.store.AvailableSlots(ctx, date)
	require.NoError(t, err)
	assert.Contains(t, free, "09:30")

	// the slot can be booked again
	_, err = f.store.Create(ctx, f.request(date, "09:30"))
	require.NoError(t, err)
}

func TestAvailableSlots_PartitionsCatalogue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := "2024-03-20"

	for i, clock := range []string{"09:00", "10:30", "14:00", "17:30"} {
		b, err := f.store.Create(ctx, f.request(date, clock))
		require.NoError(t, err)
		switch i {
		case 1:
			_, err = f.store.UpdateStatus(ctx, b.ID, StatusConfirmed)
		case 2:
			_, err = f.store.UpdateStatus(ctx, b.ID, StatusCancelled)
		}
		require.NoError(t, err)
	}

	free, err := f.store.AvailableSlots(ctx, date)
	require.NoError(t, err)
	active, err := f.store.List(ctx, Filter{Date: date})
	require.NoError(t, err)

	union := append([]string{}, free...)
	for _, b := range active {
		if IsActive(b.Status) {
			assert.NotContains(t, free, b.Time)
			union = append(union, b.Time)
		}
	}
	sort.Strings(union)
	catalogue := append([]string{}, Slots()...)
	sort.Strings(catalogue)
	assert.Equal(t, catalogue, union)
}

func TestUpdateStatus_ReactivationConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.store.Create(ctx, f.request("2024-03-15", "16:00"))
	require.NoError(t, err)
	_, err = f.store.UpdateStatus(ctx, first.ID, StatusCancelled)
	require.NoError(t, err)
	_, err = f.store.Create(ctx, f.request("2024-03-15", "16:00"))
	require.NoError(t, err)

	_, err = f.store.UpdateStatus(ctx, first.ID, StatusPending)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))

	got, err := f.store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestUpdateStatus_Unconstrained(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.store.Create(ctx, f.request("2024-03-15", "17:00"))
	require.NoError(t, err)
	for _, status := range []string{StatusConfirmed, StatusCompleted, "no-show", StatusPending} {
		got, err := f.store.UpdateStatus(ctx, b.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}

	_, err = f.store.UpdateStatus(ctx, "missing", StatusConfirmed)
	assert.EqualError(t, err, "Booking not found")
}

func TestDelete_ReleasesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.store.Create(ctx, f.request("2024-03-15", "14:30"))
	require.NoError(t, err)
	require.Equal(t, 1, f.db.Len(slotsTable))

	require.NoError(t, f.store.Delete(ctx, b.ID))
	assert.Equal(t, 0, f.db.Len(bookingsTable))
	assert.Equal(t, 0, f.db.Len(slotsTable))

	err = f.store.Delete(ctx, b.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestList_OrderAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, slot := range []struct{ date, clock string }{
		{"2024-03-16", "09:00"},
		{"2024-03-15", "14:00"},
		{"2024-03-15", "09:30"},
	} {
		_, err := f.store.Create(ctx, f.request(slot.date, slot.clock))
		require.NoError(t, err)
	}

	all, err := f.store.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-15", all[0].Date)
	assert.Equal(t, "09:30", all[0].Time)
	assert.Equal(t, "14:00", all[1].Time)
	assert.Equal(t, "2024-03-16", all[2].Date)

	onDate, err := f.store.List(ctx, Filter{Date: "2024-03-16"})
	require.NoError(t, err)
	assert.Len(t, onDate, 1)

	confirmed, err := f.store.List(ctx, Filter{Status: StatusConfirmed})
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	limited, err := f.store.List(ctx, Filter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "14:00", limited[0].Time)
}

func TestStoreErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.db.Err = errors.New("dynamodb unavailable")

	_, err := f.store.AvailableSlots(context.Background(), "2024-03-15")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestSlots_ReturnsCopy(t *testing.T) {
	got := Slots()
	require.Len(t, got, 14)
	assert.Equal(t, "09:00", got[0])
	assert.Equal(t, "17:30", got[len(got)-1])

	got[0] = "08:00"
	assert.Equal(t, "09:00", Slots()[0])
	assert.False(t, IsSlot("08:00"))
	assert.True(t, IsSlot("09:00"))
}
