package slots

import "time"

// KeyAttr is the partition key of the reservations table.
const KeyAttr = "slot_key"

// Reservation marks a (date, time) slot as held by an active booking.
type Reservation struct {
	SlotKey   string    `dynamodbav:"slot_key"` // PK, date#time
	Date      string    `dynamodbav:"date"`
	Time      string    `dynamodbav:"time"`
	BookingID string    `dynamodbav:"booking_id"`
	CreatedAt time.Time `dynamodbav:"created_at"`
}

// Key builds the reservation key for a slot.
func Key(date, clock string) string {
	return date + "#" + clock
}
