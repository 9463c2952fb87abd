package domain

import (
	"context"
	"time"
)

// Booking policy bounds. Checked at booking time, not at event creation:
// both the clock and the event's configuration may have changed since the
// event was created.
const (
	// MinBookingLeadTime is the smallest gap allowed between a booking
	// attempt and the event's start. A gap of exactly this value is still
	// bookable.
	MinBookingLeadTime = 3 * 24 * time.Hour

	// MaxBookableCapacity and MinBookableCapacity bound the configured
	// seat count an event may have and still accept bookings.
	MaxBookableCapacity = 1000
	MinBookableCapacity = 1
)

// Event represents a scheduled webinar with a fixed seat capacity.
type Event struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(organizerID, title string, startsAt, endsAt time.Time, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		OrganizerID: organizerID,
		Title:       title,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Capacity:    capacity,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// StartsTooSoon reports whether the event starts less than MinBookingLeadTime
// after now. The boundary itself is allowed: an event starting exactly
// MinBookingLeadTime from now does not start too soon.
func (e *Event) StartsTooSoon(now time.Time) bool {
	return e.StartsAt.Sub(now) < MinBookingLeadTime
}

// CapacityTooHigh reports whether the configured capacity is above MaxBookableCapacity.
func (e *Event) CapacityTooHigh() bool {
	return e.Capacity > MaxBookableCapacity
}

// CapacityTooLow reports whether the configured capacity is below MinBookableCapacity.
func (e *Event) CapacityTooLow() bool {
	return e.Capacity < MinBookableCapacity
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	// GetByID returns ErrEventNotFound when no event has the given id.
	GetByID(ctx context.Context, id string) (*Event, error)
}

// EventService defines the organizer-facing event operations.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	// ListEventRegistrations returns the registrations for an event. Only
	// the event's organizer may list them.
	ListEventRegistrations(ctx context.Context, eventID, requesterID string) ([]*Registration, error)
}
