package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"frontdesk/models"
	"frontdesk/services/calendar"
	"frontdesk/services/voice"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVoiceTestRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	backend := &stubBackend{}
	dispatcher := voice.NewDispatcher(
		calendar.NewAvailabilityService(backend, time.UTC),
		calendar.NewBookingService(backend),
		backend,
		time.UTC,
	)
	h := NewVoiceHandler(dispatcher, nil, cache)

	r := gin.New()
	r.POST("/api/retell/webhook", h.WebhookHandler)
	r.GET("/api/retell/analytics", h.AnalyticsHandler)
	return r, mr
}

func TestWebhookHandler_CallEndedStoresAnalytics(t *testing.T) {
	r, _ := newVoiceTestRouter(t)

	body := strings.NewReader(`{
		"event_type": "call_ended",
		"call_id": "call-7",
		"duration_seconds": 182,
		"ended_by": "customer",
		"disconnection_reason": "hangup"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/retell/webhook", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The record shows up through the analytics endpoint.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/retell/analytics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Calls []models.CallAnalytics `json:"calls"`
		Count int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "call-7", resp.Calls[0].CallID)
	assert.NotEmpty(t, resp.Calls[0].RecordID)
	assert.Equal(t, 182, resp.Calls[0].DurationSeconds)
	assert.Equal(t, "customer", resp.Calls[0].EndedBy)
}

func TestWebhookHandler_OtherEventsAcknowledged(t *testing.T) {
	r, mr := newVoiceTestRouter(t)

	for _, eventType := range []string{"call_started", "call_analyzed", "call_transferred"} {
		body := strings.NewReader(`{"event_type": "` + eventType + `", "call_id": "call-1"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/retell/webhook", body)
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	// Only call_ended events are recorded.
	assert.False(t, mr.Exists("calls:analytics"))
}

func TestWebhookHandler_BadPayload(t *testing.T) {
	r, _ := newVoiceTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/retell/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
