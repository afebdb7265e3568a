package service

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/repository"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/jobs"
)

// MirrorJobType tags queue jobs that persist event snapshots.
const MirrorJobType = "event_snapshot"

type eventFetcher interface {
	ListEvents(ctx context.Context, session *models.Session, scope models.EventScope) ([]dto.UpstreamEvent, error)
}

type snapshotReader interface {
	Latest(ctx context.Context, scope string) (*repository.EventSnapshot, error)
}

type snapshotWriter interface {
	Save(ctx context.Context, scope string, events []models.Event, fetchedAt time.Time) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// MirrorPayload is the queue payload of a snapshot job.
type MirrorPayload struct {
	Key       string
	Events    []models.Event
	FetchedAt time.Time
}

// EventServiceParams groups constructor dependencies.
type EventServiceParams struct {
	Fetcher     eventFetcher
	Adapter     *EventAdapter
	Cache       *CacheService
	CacheTTL    time.Duration
	Mirror      snapshotReader
	MirrorQueue jobEnqueuer
	Metrics     *MetricsService
	Logger      *zap.Logger
}

// EventService loads normalised events for a session, backed by the cache and
// the Postgres mirror when the SEES API is unavailable.
type EventService struct {
	fetcher     eventFetcher
	adapter     *EventAdapter
	cache       *CacheService
	cacheTTL    time.Duration
	mirror      snapshotReader
	mirrorQueue jobEnqueuer
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewEventService constructs an EventService.
func NewEventService(params EventServiceParams) *EventService {
	adapter := params.Adapter
	if adapter == nil {
		adapter = NewEventAdapter(nil)
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		fetcher:     params.Fetcher,
		adapter:     adapter,
		cache:       params.Cache,
		cacheTTL:    params.CacheTTL,
		mirror:      params.Mirror,
		mirrorQueue: params.MirrorQueue,
		metrics:     params.Metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// List returns the events visible to session in scope. stale is true when the
// result came from the mirror because the upstream fetch failed.
func (s *EventService) List(ctx context.Context, session *models.Session, scope models.EventScope) ([]models.Event, bool, error) {
	if session == nil {
		return nil, false, appErrors.ErrUnauthorized
	}
	if scope == "" {
		scope = models.ScopeAll
	}
	if !scope.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown scope %q", scope))
	}
	if scope != models.ScopeAll && !session.Authenticated() {
		return nil, false, appErrors.Clone(appErrors.ErrUnauthorized, "sign in to view your events")
	}

	key := SnapshotKey(session, scope)
	cacheKey := "events:" + key
	var cached []models.Event
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, false, nil
	}

	raw, err := s.fetcher.ListEvents(ctx, session, scope)
	if err != nil {
		return s.fallback(ctx, key, err)
	}
	events := s.adapter.NormalizeAll(raw)

	s.cache.Set(ctx, cacheKey, events, s.cacheTTL)
	s.enqueueSnapshot(key, events)
	return events, false, nil
}

// InvalidateSession drops cached lists for the session across scopes.
func (s *EventService) InvalidateSession(ctx context.Context, session *models.Session) error {
	return s.cache.Invalidate(ctx, "events:*:"+sessionKey(session))
}

func (s *EventService) fallback(ctx context.Context, key string, cause error) ([]models.Event, bool, error) {
	if s.mirror == nil || appErrors.FromError(cause).Code != appErrors.ErrUpstreamUnavailable.Code {
		return nil, false, cause
	}
	snapshot, err := s.mirror.Latest(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("mirror read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false, cause
	}
	s.metrics.RecordStaleServe()
	s.logger.Info("serving mirrored events",
		zap.String("key", key),
		zap.Time("fetched_at", snapshot.FetchedAt),
		zap.NamedError("upstream_error", cause),
	)
	return snapshot.Events, true, nil
}

func (s *EventService) enqueueSnapshot(key string, events []models.Event) {
	if s.mirrorQueue == nil {
		return
	}
	job := jobs.Job{
		Type:    MirrorJobType,
		Payload: MirrorPayload{Key: key, Events: events, FetchedAt: s.now().UTC()},
	}
	if err := s.mirrorQueue.Enqueue(job); err != nil {
		s.logger.Warn("failed to enqueue snapshot", zap.String("key", key), zap.Error(err))
	}
}

// NewMirrorJobHandler persists snapshot jobs through writer.
func NewMirrorJobHandler(writer snapshotWriter, metrics *MetricsService, logger *zap.Logger) jobs.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(MirrorPayload)
		if !ok || job.Type != MirrorJobType {
			logger.Error("unexpected mirror job", zap.String("job_id", job.ID), zap.String("type", job.Type))
			return nil
		}
		err := writer.Save(ctx, payload.Key, payload.Events, payload.FetchedAt)
		metrics.RecordMirrorWrite(err)
		return err
	}
}

// SnapshotKey identifies a session's view of a scope without exposing its token.
func SnapshotKey(session *models.Session, scope models.EventScope) string {
	return string(scope) + ":" + sessionKey(session)
}

func sessionKey(session *models.Session) string {
	if !session.Authenticated() {
		return "guest"
	}
	sum := blake2b.Sum256([]byte(session.Token))
	return hex.EncodeToString(sum[:16])
}
