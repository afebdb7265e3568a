package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
)

// dashboardScopes maps each dashboard to the event collection it shows.
var dashboardScopes = map[models.UserRole]models.EventScope{
	models.RoleAdmin:       models.ScopeAll,
	models.RoleOrganizer:   models.ScopeOrganized,
	models.RoleAttendee:    models.ScopeRegistered,
	models.RoleStakeholder: models.ScopeSponsored,
}

// DashboardService composes the first list page and current month per role
// from a single fetch of the role's events.
type DashboardService struct {
	events   eventLister
	listing  *ListingService
	calendar *CalendarService
	logger   *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(events eventLister, listing *ListingService, calendar *CalendarService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{events: events, listing: listing, calendar: calendar, logger: logger}
}

// ScopeFor returns the scope backing a role's dashboard.
func ScopeFor(role models.UserRole) (models.EventScope, bool) {
	scope, ok := dashboardScopes[role]
	return scope, ok
}

// ForRole builds the dashboard for role.
func (s *DashboardService) ForRole(ctx context.Context, session *models.Session, role models.UserRole) (*dto.DashboardResponse, error) {
	scope, ok := ScopeFor(role)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "dashboard not found")
	}

	events, stale, err := s.events.List(ctx, session, scope)
	if err != nil {
		return nil, err
	}

	list := s.listing.PageOf(events, stale, dto.EventListRequest{Scope: scope, Page: 1})
	today := s.calendar.Today()
	month := s.calendar.MonthOf(events, stale, dto.CalendarRequest{Year: today.Year, Month: today.Month, Scope: scope})

	return &dto.DashboardResponse{Role: role, Scope: scope, Events: *list, Calendar: *month}, nil
}
