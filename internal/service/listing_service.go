package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/pkg/palette"
)

type eventLister interface {
	List(ctx context.Context, session *models.Session, scope models.EventScope) ([]models.Event, bool, error)
}

type paletteReader interface {
	colorResolver
	Entries() []palette.Entry
}

// ListingService serves the filtered, paginated event list.
type ListingService struct {
	events  eventLister
	palette paletteReader
	logger  *zap.Logger
}

// NewListingService constructs a ListingService.
func NewListingService(events eventLister, colors paletteReader, logger *zap.Logger) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{events: events, palette: colors, logger: logger}
}

// Page returns one page of the filtered list for the session.
func (s *ListingService) Page(ctx context.Context, session *models.Session, req dto.EventListRequest) (*dto.EventListResponse, error) {
	events, stale, err := s.events.List(ctx, session, listScope(req))
	if err != nil {
		return nil, err
	}
	return s.PageOf(events, stale, req), nil
}

// PageOf pages events already loaded for req's scope.
func (s *ListingService) PageOf(events []models.Event, stale bool, req dto.EventListRequest) *dto.EventListResponse {
	filtered := s.apply(events, req)

	state := models.ViewStateLoaded
	if !filtered.criteria.IsEmpty() {
		state = models.ViewStateFiltering
	}

	return &dto.EventListResponse{
		Scope:      filtered.scope,
		Filter:     filtered.criteria,
		Events:     toEventViews(filtered.result.PageSlice, s.palette),
		TotalPages: filtered.result.TotalPages,
		TotalCount: len(filtered.result.Filtered),
		State:      state,
		Stale:      stale,
	}
}

// All returns every event matching the request, ignoring the page.
func (s *ListingService) All(ctx context.Context, session *models.Session, req dto.EventListRequest) ([]models.Event, bool, error) {
	filtered, stale, err := s.filter(ctx, session, req)
	if err != nil {
		return nil, false, err
	}
	return filtered.result.Filtered, stale, nil
}

// Categories lists the palette mapping.
func (s *ListingService) Categories() []palette.Entry {
	if s.palette == nil {
		return []palette.Entry{}
	}
	return s.palette.Entries()
}

type filteredList struct {
	scope    models.EventScope
	criteria models.EventFilter
	result   models.FilterResult
}

func (s *ListingService) filter(ctx context.Context, session *models.Session, req dto.EventListRequest) (filteredList, bool, error) {
	events, stale, err := s.events.List(ctx, session, listScope(req))
	if err != nil {
		return filteredList{}, false, err
	}
	return s.apply(events, req), stale, nil
}

func (s *ListingService) apply(events []models.Event, req dto.EventListRequest) filteredList {
	scope := listScope(req)
	criteria := req.Filter()
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	result := FilterEvents(events, criteria)
	s.logger.Debug("events filtered",
		zap.String("scope", string(scope)),
		zap.Int("total", len(events)),
		zap.Int("matched", len(result.Filtered)),
	)
	return filteredList{scope: scope, criteria: criteria, result: result}
}

func listScope(req dto.EventListRequest) models.EventScope {
	if req.Scope == "" {
		return models.ScopeAll
	}
	return req.Scope
}
