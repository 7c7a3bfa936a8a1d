package orders

import "time"

// Order statuses. The set is open: any non-blank status is accepted.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Item is one order line, captured as sent by the checkout.
type Item struct {
	ProductID string  `json:"productId" dynamodbav:"productId" validate:"notblank"`
	Name      string  `json:"name" dynamodbav:"name" validate:"notblank"`
	Price     float64 `json:"price" dynamodbav:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity" validate:"min=1"`
	Image     string  `json:"image" dynamodbav:"image" validate:"required"`
}

// Customer identifies the buyer.
type Customer struct {
	FirstName string `json:"firstName" dynamodbav:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" dynamodbav:"lastName" validate:"notblank"`
	Email     string `json:"email" dynamodbav:"email" validate:"notblank"`
	Phone     string `json:"phone" dynamodbav:"phone" validate:"notblank"`
}

// Shipping is the delivery address.
type Shipping struct {
	Address string `json:"address" dynamodbav:"address" validate:"notblank"`
	City    string `json:"city" dynamodbav:"city" validate:"notblank"`
	ZipCode string `json:"zipCode" dynamodbav:"zipCode" validate:"notblank"`
	Notes   string `json:"notes" dynamodbav:"notes"`
}

// Order represents the item stored in the orders table.
type Order struct {
	ID          string    `json:"id" dynamodbav:"id"`                   // PK
	OrderNumber string    `json:"orderNumber" dynamodbav:"orderNumber"` // display reference, not unique
	Items       []Item    `json:"items" dynamodbav:"items"`
	Customer    Customer  `json:"customer" dynamodbav:"customer"`
	Shipping    Shipping  `json:"shipping" dynamodbav:"shipping"`
	Total       float64   `json:"total" dynamodbav:"total"` // caller supplied, never recomputed
	Status      string    `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewOrder is the payload for POST /orders.
type NewOrder struct {
	Items    []Item   `json:"items" validate:"required,min=1,dive"`
	Customer Customer `json:"customer"`
	Shipping Shipping `json:"shipping"`
	Total    *float64 `json:"total" validate:"required,gte=0"`
}

// Stats summarises all orders.
type Stats struct {
	TotalOrders   int     `json:"totalOrders"`
	PendingOrders int     `json:"pendingOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	RecentOrders  []Order `json:"recentOrders"`
}
