package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
)

const maxErrorBody = 512

// scopePaths maps a view scope onto the SEES endpoint serving it.
var scopePaths = map[models.EventScope]string{
	models.ScopeAll:        "/events",
	models.ScopeOrganized:  "/events/organizer/me",
	models.ScopeRegistered: "/events/registered",
	models.ScopeSponsored:  "/events/sponsored",
}

type fetchObserver interface {
	ObserveUpstreamFetch(scope string, status int, duration time.Duration)
}

// SEESClient reads events from the SEES backend on behalf of a session.
type SEESClient struct {
	baseURL string
	http    *http.Client
	metrics fetchObserver
	logger  *zap.Logger
}

// NewSEESClient constructs a client. A nil httpClient gets one with the given timeout.
func NewSEESClient(baseURL string, timeout time.Duration, httpClient *http.Client, metrics fetchObserver, logger *zap.Logger) *SEESClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SEESClient{baseURL: baseURL, http: httpClient, metrics: metrics, logger: logger}
}

// ListEvents fetches the raw event list for a scope.
func (c *SEESClient) ListEvents(ctx context.Context, session *models.Session, scope models.EventScope) ([]dto.UpstreamEvent, error) {
	path, ok := scopePaths[scope]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown scope %q", scope))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build events request")
	}
	req.Header.Set("Accept", "application/json")
	if session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.observe(scope, http.StatusServiceUnavailable, duration)
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "event service unreachable")
	}
	defer resp.Body.Close()
	c.observe(scope, resp.StatusCode, duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("events request rejected",
			zap.String("scope", string(scope)),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return nil, statusError(resp.StatusCode)
	}

	var list dto.UpstreamEventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamUnavailable.Code, appErrors.ErrUpstreamUnavailable.Status, "malformed events payload")
	}
	return list, nil
}

func (c *SEESClient) observe(scope models.EventScope, status int, duration time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveUpstreamFetch(string(scope), status, duration)
	}
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return appErrors.Clone(appErrors.ErrUnauthorized, "session rejected by event service")
	case http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrForbidden, "event service denied access")
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, "events not found")
	default:
		return appErrors.Clone(appErrors.ErrUpstreamUnavailable, fmt.Sprintf("event service returned %d", status))
	}
}
