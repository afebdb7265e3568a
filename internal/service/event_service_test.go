package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/repository"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/jobs"
)

type stubFetcher struct {
	events []dto.UpstreamEvent
	err    error
	calls  int
	scopes []models.EventScope
}

func (s *stubFetcher) ListEvents(_ context.Context, _ *models.Session, scope models.EventScope) ([]dto.UpstreamEvent, error) {
	s.calls++
	s.scopes = append(s.scopes, scope)
	return s.events, s.err
}

type memoryCacheRepo struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix, suffix, _ := strings.Cut(pattern, "*")
	for key := range m.items {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix) {
			delete(m.items, key)
		}
	}
	return nil
}

type stubSnapshots struct {
	snapshot *repository.EventSnapshot
	err      error
	keys     []string
	saved    []MirrorPayload
	saveErr  error
}

func (s *stubSnapshots) Latest(_ context.Context, scope string) (*repository.EventSnapshot, error) {
	s.keys = append(s.keys, scope)
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}

func (s *stubSnapshots) Save(_ context.Context, scope string, events []models.Event, fetchedAt time.Time) error {
	s.saved = append(s.saved, MirrorPayload{Key: scope, Events: events, FetchedAt: fetchedAt})
	return s.saveErr
}

type recordingQueue struct {
	jobs []jobs.Job
	err  error
}

func (q *recordingQueue) Enqueue(job jobs.Job) error {
	q.jobs = append(q.jobs, job)
	return q.err
}

func upstreamFixture() []dto.UpstreamEvent {
	return []dto.UpstreamEvent{
		{"_id": "e1", "title": "Go Meetup", "category": "Technology", "startDate": "2025-03-10T18:00:00Z"},
		{"_id": "e2", "title": "Jazz Night", "category": "Music", "startDate": "2025-03-12T20:00:00Z"},
	}
}

func TestEventServiceListFetchesAndCaches(t *testing.T) {
	fetcher := &stubFetcher{events: upstreamFixture()}
	queue := &recordingQueue{}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewEventService(EventServiceParams{Fetcher: fetcher, Cache: cache, MirrorQueue: queue})
	session := &models.Session{Token: "token-1", Role: models.RoleAttendee}

	events, stale, err := svc.List(context.Background(), session, models.ScopeRegistered)
	require.NoError(t, err)
	assert.False(t, stale)
	require.Len(t, events, 2)
	assert.Equal(t, "2025-03-10", events[0].Date())

	again, _, err := svc.List(context.Background(), session, models.ScopeRegistered)
	require.NoError(t, err)
	assert.Len(t, again, 2)
	assert.Equal(t, 1, fetcher.calls)

	require.Len(t, queue.jobs, 1)
	payload, ok := queue.jobs[0].Payload.(MirrorPayload)
	require.True(t, ok)
	assert.Equal(t, MirrorJobType, queue.jobs[0].Type)
	assert.Equal(t, SnapshotKey(session, models.ScopeRegistered), payload.Key)
	assert.Len(t, payload.Events, 2)
}

func TestEventServiceDefaultsScopeAndRejectsUnknown(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := NewEventService(EventServiceParams{Fetcher: fetcher})

	_, _, err := svc.List(context.Background(), &models.Session{Role: models.RoleGuest}, "")
	require.NoError(t, err)
	assert.Equal(t, []models.EventScope{models.ScopeAll}, fetcher.scopes)

	_, _, err = svc.List(context.Background(), &models.Session{}, "archived")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceRequiresTokenForPersonalScopes(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := NewEventService(EventServiceParams{Fetcher: fetcher})

	_, _, err := svc.List(context.Background(), &models.Session{Role: models.RoleGuest}, models.ScopeOrganized)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.Zero(t, fetcher.calls)

	_, _, err = svc.List(context.Background(), nil, models.ScopeAll)
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestEventServiceServesMirrorWhenUpstreamDown(t *testing.T) {
	fetcher := &stubFetcher{err: appErrors.Clone(appErrors.ErrUpstreamUnavailable, "timeout")}
	mirrored := []models.Event{{ID: "m1", Title: "Mirrored", Start: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}}
	snapshots := &stubSnapshots{snapshot: &repository.EventSnapshot{Events: mirrored, FetchedAt: time.Now()}}
	metrics := NewMetricsService()
	svc := NewEventService(EventServiceParams{Fetcher: fetcher, Mirror: snapshots, Metrics: metrics})

	events, stale, err := svc.List(context.Background(), &models.Session{}, models.ScopeAll)
	require.NoError(t, err)
	assert.True(t, stale)
	assert.Equal(t, mirrored, events)
	assert.Equal(t, []string{"all:guest"}, snapshots.keys)
}

func TestEventServiceKeepsUpstreamErrorWithoutSnapshot(t *testing.T) {
	cause := appErrors.Clone(appErrors.ErrUpstreamUnavailable, "timeout")
	fetcher := &stubFetcher{err: cause}
	svc := NewEventService(EventServiceParams{Fetcher: fetcher, Mirror: &stubSnapshots{err: sql.ErrNoRows}})

	_, stale, err := svc.List(context.Background(), &models.Session{}, models.ScopeAll)
	assert.False(t, stale)
	assert.Equal(t, cause, err)
}

func TestEventServiceDoesNotMaskAuthErrors(t *testing.T) {
	fetcher := &stubFetcher{err: appErrors.ErrForbidden}
	snapshots := &stubSnapshots{snapshot: &repository.EventSnapshot{}}
	svc := NewEventService(EventServiceParams{Fetcher: fetcher, Mirror: snapshots})

	_, _, err := svc.List(context.Background(), &models.Session{Token: "t"}, models.ScopeSponsored)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Empty(t, snapshots.keys)
}

func TestEventServiceInvalidateSession(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, true)
	fetcher := &stubFetcher{events: upstreamFixture()}
	svc := NewEventService(EventServiceParams{Fetcher: fetcher, Cache: cache})
	session := &models.Session{Token: "token-1"}

	_, _, err := svc.List(context.Background(), session, models.ScopeAll)
	require.NoError(t, err)
	_, _, err = svc.List(context.Background(), session, models.ScopeRegistered)
	require.NoError(t, err)
	require.Len(t, repo.items, 2)

	require.NoError(t, svc.InvalidateSession(context.Background(), session))
	assert.Empty(t, repo.items)
}

func TestSnapshotKeyHidesToken(t *testing.T) {
	key := SnapshotKey(&models.Session{Token: "secret-token"}, models.ScopeOrganized)

	assert.True(t, strings.HasPrefix(key, "organized:"))
	assert.NotContains(t, key, "secret-token")
	assert.Len(t, strings.TrimPrefix(key, "organized:"), 32)
	assert.Equal(t, key, SnapshotKey(&models.Session{Token: "secret-token"}, models.ScopeOrganized))
	assert.Equal(t, "all:guest", SnapshotKey(nil, models.ScopeAll))
}

func TestMirrorJobHandlerSavesPayload(t *testing.T) {
	snapshots := &stubSnapshots{}
	handler := NewMirrorJobHandler(snapshots, NewMetricsService(), nil)
	payload := MirrorPayload{Key: "all:guest", Events: []models.Event{{ID: "e1"}}, FetchedAt: time.Now()}

	require.NoError(t, handler(context.Background(), jobs.Job{Type: MirrorJobType, Payload: payload}))
	require.Len(t, snapshots.saved, 1)
	assert.Equal(t, "all:guest", snapshots.saved[0].Key)

	snapshots.saveErr = errors.New("db down")
	assert.Error(t, handler(context.Background(), jobs.Job{Type: MirrorJobType, Payload: payload}))

	assert.NoError(t, handler(context.Background(), jobs.Job{Type: "other", Payload: "junk"}))
	assert.Len(t, snapshots.saved, 2)
}
