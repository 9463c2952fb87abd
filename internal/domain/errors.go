package domain

import "errors"

// Booking failures. Each one names a distinct business rule or data
// integrity violation. Callers match them with errors.Is; none is wrapped
// inside another and none is collapsed into a generic failure.
var (
	// ErrEventNotFound is returned when an event id does not resolve to a
	// stored event.
	ErrEventNotFound = errors.New("event not found")

	// ErrAlreadyRegistered is returned when the requesting user already
	// holds a registration for the event.
	ErrAlreadyRegistered = errors.New("user already registered for this event")

	// ErrEventTooSoon is returned when the event starts in less than
	// MinBookingLeadTime.
	ErrEventTooSoon = errors.New("event starts too soon")

	// ErrCapacityTooHigh is returned when the event's configured capacity
	// is above MaxBookableCapacity.
	ErrCapacityTooHigh = errors.New("event capacity exceeds the allowed maximum")

	// ErrCapacityTooLow is returned when the event's configured capacity
	// is below MinBookableCapacity.
	ErrCapacityTooLow = errors.New("event capacity is below the allowed minimum")

	// ErrOrganizerContactMissing is returned when the event's organizer
	// cannot be resolved or has no contact address. The registration
	// written before this check stays committed.
	ErrOrganizerContactMissing = errors.New("organizer has no contact address")

	// ErrEventFull is returned when seat availability checking is enabled
	// and the event has no seats left.
	ErrEventFull = errors.New("event has no seats left")
)

// Shared failures used across services and delivery.
var (
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
