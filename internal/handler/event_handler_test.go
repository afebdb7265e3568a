package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/palette"
)

type stubListingSrv struct {
	lastReq dto.EventListRequest
	resp    *dto.EventListResponse
	err     error
}

func (s *stubListingSrv) Page(_ context.Context, _ *models.Session, req dto.EventListRequest) (*dto.EventListResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.Filter = req.Filter()
	return &resp, nil
}

func (s *stubListingSrv) Categories() []palette.Entry {
	return []palette.Entry{{Category: "music", Color: "bg-purple-500"}}
}

type stubExportSrv struct {
	lastReq dto.ExportRequest
	err     error
}

func (s *stubExportSrv) Export(_ context.Context, _ *models.Session, req dto.ExportRequest) (*service.ExportResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &service.ExportResult{Filename: "events.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("Title\n")}, nil
}

func TestEventHandlerList(t *testing.T) {
	listing := &stubListingSrv{resp: &dto.EventListResponse{
		Scope:      models.ScopeSponsored,
		Events:     []dto.EventView{{ID: "e1", FeeLabel: "Free"}},
		TotalPages: 3,
		TotalCount: 11,
		State:      models.ViewStateFiltering,
	}}
	handler := NewEventHandler(listing, nil, nil, nil)
	c, rec := newTestContext("/events?q=Jazz&category=music&date=2025-03-01&time=18:30&page=2&scope=sponsored", &models.Session{Token: "t"})

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.EventListRequest{
		Scope: models.ScopeSponsored, Query: "Jazz", Category: "music", Date: "2025-03-01", Time: "18:30", Page: 2,
	}, listing.lastReq)

	envelope := decodeEnvelope(t, rec)
	assert.EqualValues(t, 2, envelope.Pagination["page"])
	assert.EqualValues(t, 5, envelope.Pagination["page_size"])
	assert.EqualValues(t, 11, envelope.Pagination["total_count"])
	assert.EqualValues(t, 3, envelope.Pagination["total_pages"])
	assert.Equal(t, "filtering", envelope.Meta["state"])
	assert.Equal(t, false, envelope.Meta["stale"])
}

type stubSessionCache struct {
	invalidated []*models.Session
	err         error
}

func (s *stubSessionCache) InvalidateSession(_ context.Context, session *models.Session) error {
	s.invalidated = append(s.invalidated, session)
	return s.err
}

func TestEventHandlerListRefreshInvalidatesSession(t *testing.T) {
	cache := &stubSessionCache{}
	handler := NewEventHandler(&stubListingSrv{resp: &dto.EventListResponse{}}, nil, cache, nil)
	session := &models.Session{Token: "t"}

	c, rec := newTestContext("/events?refresh=true", session)
	handler.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cache.invalidated, 1)
	assert.Same(t, session, cache.invalidated[0])

	c, rec = newTestContext("/events", session)
	handler.List(c)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, cache.invalidated, 1)
}

func TestEventHandlerListRefreshSurvivesCacheFailure(t *testing.T) {
	cache := &stubSessionCache{err: errors.New("redis down")}
	handler := NewEventHandler(&stubListingSrv{resp: &dto.EventListResponse{}}, nil, cache, nil)

	c, rec := newTestContext("/events?refresh=1", &models.Session{Token: "t"})
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, c.Errors, 1)
}

func TestEventHandlerListValidation(t *testing.T) {
	handler := NewEventHandler(&stubListingSrv{resp: &dto.EventListResponse{}}, nil, nil, nil)
	for _, target := range []string{
		"/events?page=0",
		"/events?page=two",
		"/events?date=03/01/2025",
		"/events?time=6pm",
		"/events?scope=mine",
		"/events?refresh=maybe",
	} {
		c, rec := newTestContext(target, &models.Session{})
		handler.List(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestEventHandlerListUpstreamError(t *testing.T) {
	handler := NewEventHandler(&stubListingSrv{err: appErrors.ErrUpstreamUnavailable}, nil, nil, nil)
	c, rec := newTestContext("/events", &models.Session{})

	handler.List(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestEventHandlerCategories(t *testing.T) {
	handler := NewEventHandler(&stubListingSrv{}, nil, nil, nil)
	c, rec := newTestContext("/events/categories", &models.Session{})

	handler.Categories(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"color":"bg-purple-500"`)
}

func TestEventHandlerExport(t *testing.T) {
	exports := &stubExportSrv{}
	handler := NewEventHandler(&stubListingSrv{}, exports, nil, nil)
	c, rec := newTestContext("/events/export?format=CSV&category=tech", &models.Session{Token: "t", Role: models.RoleOrganizer})

	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", exports.lastReq.Format)
	assert.Equal(t, "tech", exports.lastReq.Category)
	assert.Equal(t, 1, exports.lastReq.Page)
	assert.Equal(t, `attachment; filename="events.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Title\n", rec.Body.String())
}

func TestEventHandlerExportRejectsFormat(t *testing.T) {
	handler := NewEventHandler(&stubListingSrv{}, &stubExportSrv{}, nil, nil)

	c, rec := newTestContext("/events/export?format=xlsx", &models.Session{Token: "t"})
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newTestContext("/events/export", &models.Session{Token: "t"})
	handler.Export(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
