package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
)

type stubCalendarSrv struct {
	lastReq dto.CalendarRequest
	stale   bool
}

func (s *stubCalendarSrv) Today() dto.MonthPosition {
	return dto.MonthPosition{Year: 2025, Month: 2}
}

func (s *stubCalendarSrv) Month(_ context.Context, _ *models.Session, req dto.CalendarRequest) (*dto.CalendarResponse, error) {
	s.lastReq = req
	return &dto.CalendarResponse{Year: req.Year, Month: req.Month, Stale: s.stale}, nil
}

func (s *stubCalendarSrv) Navigate(req dto.NavigateRequest) dto.MonthPosition {
	year, month := service.NavigateMonth(req.Year, req.Month, req.Direction)
	return dto.MonthPosition{Year: year, Month: month}
}

func TestCalendarHandlerMonthDefaultsToToday(t *testing.T) {
	srv := &stubCalendarSrv{stale: true}
	handler := NewCalendarHandler(srv, nil)
	c, rec := newTestContext("/calendar", &models.Session{Role: models.RoleGuest})

	handler.Month(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.CalendarRequest{Year: 2025, Month: 2, Scope: models.ScopeAll}, srv.lastReq)
	envelope := decodeEnvelope(t, rec)
	assert.EqualValues(t, 2, envelope.Data["month"])
	assert.Equal(t, true, envelope.Meta["stale"])
}

func TestCalendarHandlerMonthParsesQuery(t *testing.T) {
	srv := &stubCalendarSrv{}
	handler := NewCalendarHandler(srv, nil)
	c, rec := newTestContext("/calendar?year=2026&month=1&scope=registered&weekStart=Sunday", &models.Session{Token: "t"})

	handler.Month(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.CalendarRequest{Year: 2026, Month: 1, Scope: models.ScopeRegistered, WeekStart: "sunday"}, srv.lastReq)
}

func TestCalendarHandlerMonthValidation(t *testing.T) {
	handler := NewCalendarHandler(&stubCalendarSrv{}, nil)
	for _, target := range []string{
		"/calendar?month=12",
		"/calendar?month=-1",
		"/calendar?year=abc",
		"/calendar?scope=everything",
		"/calendar?weekStart=friday",
	} {
		c, rec := newTestContext(target, &models.Session{})
		handler.Month(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestCalendarHandlerNavigate(t *testing.T) {
	handler := NewCalendarHandler(&stubCalendarSrv{}, nil)

	c, rec := newTestContext("/calendar/navigate?year=2025&month=11&direction=next", nil)
	handler.Navigate(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.EqualValues(t, 2026, envelope.Data["year"])
	assert.EqualValues(t, 0, envelope.Data["month"])

	c, rec = newTestContext("/calendar/navigate?year=2025&month=0&direction=PREV", nil)
	handler.Navigate(c)
	envelope = decodeEnvelope(t, rec)
	assert.EqualValues(t, 2024, envelope.Data["year"])
	assert.EqualValues(t, 11, envelope.Data["month"])
}

func TestCalendarHandlerNavigateValidation(t *testing.T) {
	handler := NewCalendarHandler(&stubCalendarSrv{}, nil)
	for _, target := range []string{
		"/calendar/navigate?year=2025&month=3",
		"/calendar/navigate?year=2025&month=3&direction=up",
		"/calendar/navigate?year=2025&direction=next",
		"/calendar/navigate?month=3&direction=next",
	} {
		c, rec := newTestContext(target, nil)
		handler.Navigate(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
