package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"webinarbooking/internal/clock"
	"webinarbooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	starts := base.Add(30 * 24 * time.Hour)

	tests := []struct {
		name    string
		repoErr error
		event   *domain.Event
		wantErr error
	}{
		{
			name:  "success",
			event: &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: starts, EndsAt: starts.Add(time.Hour), Capacity: 50},
		},
		{
			name:    "missing organizer",
			event:   &domain.Event{Title: "Go Webinar", StartsAt: starts, EndsAt: starts.Add(time.Hour), Capacity: 50},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "blank title",
			event:   &domain.Event{OrganizerID: "us-1", Title: "   ", StartsAt: starts, EndsAt: starts.Add(time.Hour), Capacity: 50},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing times",
			event:   &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", Capacity: 50},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "ends before it starts",
			event:   &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: starts, EndsAt: starts.Add(-time.Hour), Capacity: 50},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "ends exactly when it starts",
			event:   &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: starts, EndsAt: starts, Capacity: 50},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "zero capacity",
			event:   &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: starts, EndsAt: starts.Add(time.Hour)},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "repo error",
			repoErr: errors.New("db down"),
			event:   &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: starts, EndsAt: starts.Add(time.Hour), Capacity: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := newFakeEventRepo()
			eventRepo.err = tt.repoErr
			svc := NewEventService(eventRepo, newFakeRegistrationRepo(), clock.NewFixed(base), timeout)

			err := svc.CreateEvent(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			if tt.repoErr != nil {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, tt.event.ID)
			assert.Equal(t, base, tt.event.CreatedAt)
			assert.Equal(t, base, tt.event.UpdatedAt)
			_, ok := eventRepo.byID[tt.event.ID]
			require.True(t, ok)
		})
	}
}

func TestEventService_GetEvent(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	eventRepo := newFakeEventRepo()
	svc := NewEventService(eventRepo, newFakeRegistrationRepo(), clock.NewFixed(base), 5*time.Second)

	seeded := &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: base.Add(96 * time.Hour), EndsAt: base.Add(97 * time.Hour), Capacity: 50}
	require.NoError(t, eventRepo.Create(ctx, seeded))

	got, err := svc.GetEvent(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, got.ID)
	assert.Equal(t, "Go Webinar", got.Title)

	_, err = svc.GetEvent(ctx, "ev-missing")
	require.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventService_ListEventRegistrations(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (domain.EventService, *domain.Event, *fakeRegistrationRepo) {
		eventRepo := newFakeEventRepo()
		regRepo := newFakeRegistrationRepo()
		event := &domain.Event{OrganizerID: "us-1", Title: "Go Webinar", StartsAt: base.Add(96 * time.Hour), EndsAt: base.Add(97 * time.Hour), Capacity: 50}
		require.NoError(t, eventRepo.Create(ctx, event))
		return NewEventService(eventRepo, regRepo, clock.NewFixed(base), 5*time.Second), event, regRepo
	}

	t.Run("organizer sees registrations", func(t *testing.T) {
		svc, event, regRepo := setup(t)
		require.NoError(t, regRepo.Create(ctx, domain.NewRegistration(event.ID, "us-7", base, base)))
		require.NoError(t, regRepo.Create(ctx, domain.NewRegistration(event.ID, "us-8", base, base)))

		regs, err := svc.ListEventRegistrations(ctx, event.ID, "us-1")
		require.NoError(t, err)
		require.Len(t, regs, 2)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		svc, event, _ := setup(t)
		regs, err := svc.ListEventRegistrations(ctx, event.ID, "us-1")
		require.NoError(t, err)
		require.NotNil(t, regs)
		assert.Empty(t, regs)
	})

	t.Run("non-organizer is forbidden", func(t *testing.T) {
		svc, event, _ := setup(t)
		_, err := svc.ListEventRegistrations(ctx, event.ID, "us-2")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _ := setup(t)
		_, err := svc.ListEventRegistrations(ctx, "ev-missing", "us-1")
		require.ErrorIs(t, err, domain.ErrEventNotFound)
	})
}
