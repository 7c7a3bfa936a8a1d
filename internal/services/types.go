package services

import "time"

// Service is a bookable consultation or treatment.
type Service struct {
	ID          string    `json:"id" dynamodbav:"id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Category    string    `json:"category" dynamodbav:"category"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Duration    string    `json:"duration" dynamodbav:"duration"` // display label, e.g. "60 min"
	Description string    `json:"description" dynamodbav:"description"`
	Image       string    `json:"image" dynamodbav:"image"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// NewService is the payload for POST /services.
type NewService struct {
	Title       string   `json:"title" validate:"notblank"`
	Category    string   `json:"category" validate:"notblank"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Duration    string   `json:"duration" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
}

// Patch is the payload for PUT /services/{id}.
type Patch struct {
	Title       *string  `json:"title" validate:"omitempty,notblank"`
	Category    *string  `json:"category" validate:"omitempty,notblank"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// Apply merges the supplied fields into s.
func (p Patch) Apply(s *Service) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Duration != nil {
		s.Duration = *p.Duration
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
}
