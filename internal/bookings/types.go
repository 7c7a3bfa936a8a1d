package bookings

import (
	"slices"
	"time"
)

// Booking statuses. Only pending and confirmed hold a slot.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// dailySlots is the slot catalogue, identical for every date.
var dailySlots = [...]string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// Slots returns a copy of the daily slot catalogue in order.
func Slots() []string {
	return append([]string(nil), dailySlots[:]...)
}

// IsActive reports whether a booking with status occupies its slot.
func IsActive(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// IsSlot reports whether clock is in the slot catalogue.
func IsSlot(clock string) bool {
	return slices.Contains(dailySlots[:], clock)
}

// Customer is the person the booking is for.
type Customer struct {
	Name  string `json:"name" dynamodbav:"name" validate:"notblank"`
	Email string `json:"email" dynamodbav:"email" validate:"notblank"`
	Phone string `json:"phone" dynamodbav:"phone" validate:"notblank"`
}

// Booking represents the item stored in the bookings table. ServiceName and
// ServicePrice are copied from the service at creation and never synced.
type Booking struct {
	ID            string    `json:"id" dynamodbav:"id"`
	BookingNumber string    `json:"bookingNumber" dynamodbav:"bookingNumber"`
	ServiceID     string    `json:"serviceId" dynamodbav:"serviceId"`
	ServiceName   string    `json:"serviceName" dynamodbav:"serviceName"`
	ServicePrice  float64   `json:"servicePrice" dynamodbav:"servicePrice"`
	Date          string    `json:"date" dynamodbav:"date"` // YYYY-MM-DD
	Time          string    `json:"time" dynamodbav:"time"` // catalogue label
	Customer      Customer  `json:"customer" dynamodbav:"customer"`
	Notes         string    `json:"notes" dynamodbav:"notes"`
	Status        string    `json:"status" dynamodbav:"status"`
	CreatedAt     time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewBooking is the payload for POST /bookings.
type NewBooking struct {
	ServiceID string   `json:"serviceId" validate:"notblank"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string   `json:"time" validate:"notblank"`
	Customer  Customer `json:"customer"`
	Notes     string   `json:"notes"`
}
