package domain

import "context"

// BookingResult is the outcome of a completed booking.
// swagger:model BookingResult
type BookingResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BookingService books seats at events on behalf of users and notifies the
// event's organizer about each new registration.
type BookingService interface {
	// RegisterForEvent runs a single booking attempt for the requesting
	// user. It validates the attempt, persists a registration, and sends
	// the organizer notification, failing with one of the booking sentinel
	// errors when a rule is violated. A registration that was already
	// persisted stays committed even when notification fails afterwards.
	RegisterForEvent(ctx context.Context, eventID string, requestingUser *User) (*BookingResult, error)
}
