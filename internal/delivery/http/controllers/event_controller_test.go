package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webinarbooking/internal/delivery/http/helpers"
	"webinarbooking/internal/delivery/http/middleware"
	"webinarbooking/internal/domain"
)

type mockEventService struct {
	event         *domain.Event
	registrations []*domain.Registration
	err           error
}

func (m *mockEventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = testEventID
	return nil
}

func (m *mockEventService) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.event, nil
}

func (m *mockEventService) ListEventRegistrations(ctx context.Context, eventID, requesterID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.registrations, nil
}

func TestEventController_CreateEvent_Unauthorized(t *testing.T) {
	ctrl := NewEventController(discardLogger(), &mockEventService{})

	body := `{"title":"Go Webinar","starts_at":"2030-06-01T10:00:00Z","ends_at":"2030-06-01T11:00:00Z","capacity":100}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	w := httptest.NewRecorder()

	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestEventController_CreateEvent_Success(t *testing.T) {
	ctrl := NewEventController(discardLogger(), &mockEventService{})

	body := `{"title":"Go Webinar","starts_at":"2030-06-01T10:00:00Z","ends_at":"2030-06-01T11:00:00Z","capacity":100}`
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req = req.WithContext(middleware.SetUserID(req.Context(), "organizer-1"))
	w := httptest.NewRecorder()

	ctrl.CreateEvent(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
	}
	var resp struct {
		Data  *domain.Event     `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data == nil || resp.Data.OrganizerID != "organizer-1" {
		t.Fatalf("expected organizer from token, got %+v", resp.Data)
	}
	if resp.Data.ID != testEventID {
		t.Fatalf("expected id from service, got %q", resp.Data.ID)
	}
}

func TestEventController_CreateEvent_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"starts_at":"2030-06-01T10:00:00Z","ends_at":"2030-06-01T11:00:00Z","capacity":100}`},
		{"ends before starts", `{"title":"Go Webinar","starts_at":"2030-06-01T11:00:00Z","ends_at":"2030-06-01T10:00:00Z","capacity":100}`},
		{"zero capacity", `{"title":"Go Webinar","starts_at":"2030-06-01T10:00:00Z","ends_at":"2030-06-01T11:00:00Z","capacity":0}`},
		{"missing times", `{"title":"Go Webinar","capacity":100}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(discardLogger(), &mockEventService{})

			req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(tt.body))
			req = req.WithContext(middleware.SetUserID(req.Context(), "organizer-1"))
			w := httptest.NewRecorder()

			ctrl.CreateEvent(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, w.Code, w.Body.String())
			}
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	event := &domain.Event{
		ID:       testEventID,
		Title:    "Go Webinar",
		StartsAt: time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2030, 6, 1, 11, 0, 0, 0, time.UTC),
		Capacity: 100,
	}

	tests := []struct {
		name       string
		eventID    string
		svc        *mockEventService
		wantStatus int
	}{
		{"success", testEventID, &mockEventService{event: event}, http.StatusOK},
		{"invalid id", "nope", &mockEventService{}, http.StatusBadRequest},
		{"not found", testEventID, &mockEventService{err: domain.ErrEventNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(discardLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			w := httptest.NewRecorder()

			ctrl.GetEvent(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestEventController_ListRegistrations(t *testing.T) {
	regs := []*domain.Registration{
		{ID: "r1", EventID: testEventID, UserID: "u1"},
		{ID: "r2", EventID: testEventID, UserID: "u2"},
	}

	tests := []struct {
		name       string
		userID     string
		svc        *mockEventService
		wantStatus int
	}{
		{"success", "organizer-1", &mockEventService{registrations: regs}, http.StatusOK},
		{"unauthorized", "", &mockEventService{}, http.StatusUnauthorized},
		{"forbidden", "intruder", &mockEventService{err: domain.ErrForbidden}, http.StatusForbidden},
		{"event not found", "organizer-1", &mockEventService{err: domain.ErrEventNotFound}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewEventController(discardLogger(), tt.svc)

			req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/registrations", nil)
			req.SetPathValue("eventID", testEventID)
			if tt.userID != "" {
				req = req.WithContext(middleware.SetUserID(req.Context(), tt.userID))
			}
			w := httptest.NewRecorder()

			ctrl.ListRegistrations(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data  []*domain.Registration `json:"data"`
					Error *helpers.APIError      `json:"error"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if len(resp.Data) != 2 {
					t.Fatalf("expected 2 registrations, got %d", len(resp.Data))
				}
			}
		})
	}
}
