package domain

import (
	"context"
	"time"
)

// Registration represents a user's committed seat at an event.
// swagger:model Registration
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewRegistration creates a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, userID string, createdAt, updatedAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create persists the registration and returns ErrAlreadyRegistered
	// when the user already holds a seat at the event.
	Create(ctx context.Context, reg *Registration) error
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
}
