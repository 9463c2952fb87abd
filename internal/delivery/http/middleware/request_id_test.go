package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_generatesWhenAbsent(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	rr := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://test/events/e1", nil))

	require.NotEmpty(t, ctxID)
	assert.Equal(t, ctxID, rr.Header().Get("X-Request-ID"))
}

func TestRequestID_keepsIncomingHeader(t *testing.T) {
	var ctxID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID, _ = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "http://test/events/e1", nil)
	req.Header.Set("X-Request-ID", "client-7")
	rr := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rr, req)

	assert.Equal(t, "client-7", ctxID)
	assert.Equal(t, "client-7", rr.Header().Get("X-Request-ID"))
}
