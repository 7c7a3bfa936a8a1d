package contact

import "time"

// StatusNew is the status of an unread message.
const StatusNew = "new"

// Message is a contact form submission. Only Status changes after creation.
type Message struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Message   string    `json:"message" dynamodbav:"message"`
	Status    string    `json:"status" dynamodbav:"status"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewMessage is the payload for POST /contact.
type NewMessage struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"notblank"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"notblank"`
}
