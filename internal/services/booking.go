package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"webinarbooking/internal/clock"
	"webinarbooking/internal/domain"
)

const (
	// successMessage is returned to the caller on a completed booking.
	successMessage = "User registered successfully"

	// notificationSubject is the subject line of the organizer notification.
	notificationSubject = "New participant"
)

// eventLocks hands out one mutex per event id so booking attempts for the
// same event are serialized within this process. Cross-process callers are
// covered by the registration store's unique (event_id, user_id) constraint.
type eventLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// acquire locks the mutex for the event id, creating it on first use, and
// returns the matching unlock.
func (l *eventLocks) acquire(eventID string) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

type bookingService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	userRepo         domain.UserRepository
	notifier         domain.Notifier
	clock            clock.Clock

	checkSeatAvailability bool

	locks eventLocks
}

// BookingServiceOption configures optional behavior of the booking service.
type BookingServiceOption func(*bookingService)

// WithSeatAvailabilityCheck makes bookings fail with ErrEventFull once an
// event has as many registrations as seats. Without it only the configured
// capacity is validated and occupancy is never counted, so a full event
// keeps accepting registrations.
func WithSeatAvailabilityCheck() BookingServiceOption {
	return func(s *bookingService) {
		s.checkSeatAvailability = true
	}
}

// NewBookingService creates a BookingService with the given ports.
func NewBookingService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	notifier domain.Notifier,
	clk clock.Clock,
	opts ...BookingServiceOption,
) domain.BookingService {
	s := &bookingService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		clock:            clk,
		locks:            eventLocks{locks: make(map[string]*sync.Mutex)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) RegisterForEvent(ctx context.Context, eventID string, requestingUser *domain.User) (*domain.BookingResult, error) {
	unlock := s.locks.acquire(eventID)
	defer unlock()

	// The event load and the registration listing are independent reads.
	var (
		event         *domain.Event
		registrations []*domain.Registration
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.eventRepo.GetByID(gctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrEventNotFound) {
				return domain.ErrEventNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		event = e
		return nil
	})
	g.Go(func() error {
		regs, err := s.registrationRepo.ListByEventID(gctx, eventID)
		if err != nil {
			return fmt.Errorf("list registrations: %w", err)
		}
		registrations = regs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validation order is fixed: duplicate registration wins over timing,
	// timing over capacity, capacity-too-high over capacity-too-low.
	for _, reg := range registrations {
		if reg.UserID == requestingUser.ID {
			return nil, domain.ErrAlreadyRegistered
		}
	}
	now := s.clock.Now()
	if event.StartsTooSoon(now) {
		return nil, domain.ErrEventTooSoon
	}
	if event.CapacityTooHigh() {
		return nil, domain.ErrCapacityTooHigh
	}
	if event.CapacityTooLow() {
		return nil, domain.ErrCapacityTooLow
	}
	if s.checkSeatAvailability && len(registrations) >= event.Capacity {
		return nil, domain.ErrEventFull
	}

	reg := domain.NewRegistration(eventID, requestingUser.ID, now, now)
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	// From here on the registration stays committed: organizer resolution
	// and notification failures do not roll it back.
	organizer, err := s.userRepo.FindByID(ctx, event.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("find organizer: %w", err)
	}
	if organizer == nil || organizer.Email == "" {
		return nil, domain.ErrOrganizerContactMissing
	}

	body := fmt.Sprintf("New participant for webinar %s: %s", event.Title, requestingUser.Email)
	if err := s.notifier.Send(ctx, organizer.Email, notificationSubject, body); err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}

	return &domain.BookingResult{Success: true, Message: successMessage}, nil
}
