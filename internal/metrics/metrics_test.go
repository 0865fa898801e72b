package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/services"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/rooms/:id", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	for _, id := range []string{"1", "2", "3"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/rooms/"+id, nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/v1/rooms/:id", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.latency))
}

func TestOnChange(t *testing.T) {
	m := New()
	ctx := context.Background()

	require.NoError(t, m.OnChange(ctx, services.ChangeEvent{Collection: "rooms", Kind: services.ChangeCreated}))
	require.NoError(t, m.OnChange(ctx, services.ChangeEvent{
		Collection: "reservations", Kind: services.ChangeTransition, Action: "check-in", From: "confirmed", To: "checked-in",
	}))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.changes.WithLabelValues("rooms", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.changes.WithLabelValues("reservations", "transition")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("reservations", "check-in", "checked-in")))
}

func TestHandler(t *testing.T) {
	m := New()
	require.NoError(t, m.OnChange(context.Background(), services.ChangeEvent{Collection: "guests", Kind: services.ChangeDeleted}))

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `backoffice_record_changes_total{collection="guests",kind="deleted"} 1`))
	assert.Contains(t, body, "go_goroutines")
}
