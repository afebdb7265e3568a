package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/client"
	"github.com/noah-isme/sees-portal/internal/handler"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
	"github.com/noah-isme/sees-portal/pkg/config"
	"github.com/noah-isme/sees-portal/pkg/export"
	"github.com/noah-isme/sees-portal/pkg/palette"
)

const routerSecret = "router-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"e1","title":"Go Meetup","category":"Technology","startDate":"2025-03-10T18:00:00Z","capacity":50,"registrations":12},
			{"_id":"e2","title":"Jazz Night","category":"Music","startDate":"2025-03-12T20:00:00Z","price":15}
		]`))
	}))
	t.Cleanup(upstream.Close)

	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1", Metrics: config.MetricsConfig{Enabled: true}}
	logr := zap.NewNop()
	metrics := service.NewMetricsService()
	colors := palette.New(logr)

	events := service.NewEventService(service.EventServiceParams{
		Fetcher: client.NewSEESClient(upstream.URL, time.Second, upstream.Client(), metrics, logr),
		Metrics: metrics,
	})
	listing := service.NewListingService(events, colors, logr)
	calendar := service.NewCalendarService(events, colors, logr)

	return newRouter(cfg, logr, routerDeps{
		Sessions:  service.NewSessionService(routerSecret, logr),
		Metrics:   metrics,
		Calendar:  handler.NewCalendarHandler(calendar, nil),
		Events:    handler.NewEventHandler(listing, service.NewExportService(listing, export.NewCSVExporter(), export.NewPDFExporter(), logr), events, nil),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(events, listing, calendar, logr)),
		Health:    handler.NewMetricsHandler(metrics, nil),
	})
}

func bearer(t *testing.T, role models.UserRole) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, models.SessionClaims{
		Role:             string(role),
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func get(r *gin.Engine, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterEventsEndToEnd(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/v1/events?q=jazz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Events []map[string]interface{} `json:"events"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data.Events, 1)
	assert.Equal(t, "Jazz Night", body.Data.Events[0]["title"])
	assert.Equal(t, "$15.00", body.Data.Events[0]["feeLabel"])
	assert.Equal(t, "bg-purple-500", body.Data.Events[0]["categoryColor"])
	assert.Equal(t, "filtering", body.Meta["state"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouterCalendar(t *testing.T) {
	r := newTestRouter(t)

	rec := get(r, "/api/v1/calendar?year=2025&month=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"weekdays":["Mon","Tue","Wed","Thu","Fri","Sat","Sun"]`)
	assert.Contains(t, rec.Body.String(), "Go Meetup")
}

func TestRouterRoleGuards(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/v1/dashboard/admin", "").Code)
	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/dashboard/organizer", bearer(t, models.RoleAttendee)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/dashboard/attendee", bearer(t, models.RoleAttendee)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/dashboard/stakeholder", bearer(t, models.RoleAdmin)).Code)

	assert.Equal(t, http.StatusForbidden, get(r, "/api/v1/events/export?format=csv", bearer(t, models.RoleAttendee)).Code)
	export := get(r, "/api/v1/events/export?format=csv", bearer(t, models.RoleStakeholder))
	require.Equal(t, http.StatusOK, export.Code)
	assert.Contains(t, export.Body.String(), "Title,Category,Date,Time,Location,Organizer,Sponsor,Fee,Seats")
}

func TestRouterOperationalEndpoints(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, get(r, "/health", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/ready", "").Code)

	_ = get(r, "/api/v1/events", "")
	metrics := get(r, "/metrics", "")
	require.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "sees_upstream_fetch_seconds")
}
