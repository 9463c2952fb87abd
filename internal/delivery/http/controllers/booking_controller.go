package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"webinarbooking/internal/delivery/http/helpers"
	"webinarbooking/internal/delivery/http/middleware"
	"webinarbooking/internal/domain"
)

// RegisterSuccessResponse is the success response envelope for POST /events/{eventID}/registrations (201).
type RegisterSuccessResponse struct {
	Data  *domain.BookingResult `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// BookingController handles seat booking for events.
type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Users   domain.UserRepository
}

// NewBookingController creates a BookingController with the given logger, service, and user repository.
func NewBookingController(logger *slog.Logger, svc domain.BookingService, users domain.UserRepository) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
		Users:   users,
	}
}

// Register godoc
// @Summary Register the current user for an event
// @Description Books a seat on the event for the authenticated user and notifies the organizer by email. A registration that was persisted is never rolled back: when the organizer cannot be notified the response is an error but the seat stays booked.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the booking result"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already registered or event full)"
// @Failure 422 {object} helpers.APIResponse "error.code: unprocessable (event too soon or capacity out of bounds)"
// @Failure 502 {object} helpers.APIResponse "error.code: notification_failed (seat booked, organizer not notified)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/registrations [post]
func (c *BookingController) Register(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Users.FindByID(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if user == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	result, err := c.Service.RegisterForEvent(r.Context(), eventID, user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
		case errors.Is(err, domain.ErrAlreadyRegistered), errors.Is(err, domain.ErrEventFull):
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
		case errors.Is(err, domain.ErrEventTooSoon),
			errors.Is(err, domain.ErrCapacityTooHigh),
			errors.Is(err, domain.ErrCapacityTooLow):
			helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessable, err.Error())
		case errors.Is(err, domain.ErrOrganizerContactMissing):
			helpers.WriteJSONError(w, http.StatusBadGateway, helpers.ErrCodeNotificationFailed, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}
