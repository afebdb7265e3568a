package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
)

const (
	WeekStartMonday = "monday"
	WeekStartSunday = "sunday"
)

// CalendarService renders month grids over a session's events.
type CalendarService struct {
	events  eventLister
	palette colorResolver
	logger  *zap.Logger
	now     func() time.Time
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(events eventLister, colors colorResolver, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{events: events, palette: colors, logger: logger, now: time.Now}
}

// Today returns the current (year, 0-based month).
func (s *CalendarService) Today() dto.MonthPosition {
	now := s.now()
	return dto.MonthPosition{Year: now.Year(), Month: int(now.Month()) - 1}
}

// Month builds the grid for the requested month and scope.
func (s *CalendarService) Month(ctx context.Context, session *models.Session, req dto.CalendarRequest) (*dto.CalendarResponse, error) {
	scope := req.Scope
	if scope == "" {
		scope = models.ScopeAll
	}
	events, stale, err := s.events.List(ctx, session, scope)
	if err != nil {
		return nil, err
	}
	return s.MonthOf(events, stale, req), nil
}

// MonthOf renders the requested month over events already loaded for its scope.
func (s *CalendarService) MonthOf(events []models.Event, stale bool, req dto.CalendarRequest) *dto.CalendarResponse {
	resp := s.render(req.Year, req.Month, req.WeekStart, events)
	resp.Stale = stale
	return resp
}

// Navigate steps one month in direction.
func (s *CalendarService) Navigate(req dto.NavigateRequest) dto.MonthPosition {
	year, month := NavigateMonth(req.Year, req.Month, req.Direction)
	return dto.MonthPosition{Year: year, Month: month}
}

func (s *CalendarService) render(year, month int, weekStart string, events []models.Event) *dto.CalendarResponse {
	year, month = NormalizeMonth(year, month)
	opts := gridOptionsFor(weekStart)
	grid := BuildCalendarGridWithOptions(year, month, events, opts)

	weeks := make([][]dto.CalendarCell, models.GridWeeks)
	for w := 0; w < models.GridWeeks; w++ {
		row := make([]dto.CalendarCell, models.GridDays)
		for d := 0; d < models.GridDays; d++ {
			cell := grid[w][d]
			row[d] = dto.CalendarCell{
				DayNumber:      cell.DayNumber,
				InCurrentMonth: cell.InCurrentMonth,
				Events:         toEventViews(cell.Events, s.palette),
			}
		}
		weeks[w] = row
	}

	prevYear, prevMonth := NavigateMonth(year, month, models.NavigatePrev)
	nextYear, nextMonth := NavigateMonth(year, month, models.NavigateNext)

	return &dto.CalendarResponse{
		Year:      year,
		Month:     month,
		WeekStart: strings.ToLower(opts.WeekStart.String()),
		Weekdays:  weekdayHeaders(opts.WeekStart),
		Weeks:     weeks,
		Prev:      dto.MonthPosition{Year: prevYear, Month: prevMonth},
		Next:      dto.MonthPosition{Year: nextYear, Month: nextMonth},
	}
}

func gridOptionsFor(weekStart string) GridOptions {
	opts := DefaultGridOptions()
	if strings.EqualFold(weekStart, WeekStartSunday) {
		opts.WeekStart = time.Sunday
	}
	return opts
}

func weekdayHeaders(start time.Weekday) []string {
	headers := make([]string, models.GridDays)
	for i := range headers {
		headers[i] = time.Weekday((int(start) + i) % 7).String()[:3]
	}
	return headers
}
