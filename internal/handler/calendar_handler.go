package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/response"
)

type calendarService interface {
	Today() dto.MonthPosition
	Month(ctx context.Context, session *models.Session, req dto.CalendarRequest) (*dto.CalendarResponse, error)
	Navigate(req dto.NavigateRequest) dto.MonthPosition
}

// CalendarHandler serves month grids.
type CalendarHandler struct {
	service  calendarService
	validate *validator.Validate
}

// NewCalendarHandler constructs the handler.
func NewCalendarHandler(service calendarService, validate *validator.Validate) *CalendarHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &CalendarHandler{service: service, validate: validate}
}

// Month godoc
// @Summary Month calendar grid
// @Tags Calendar
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param month query int false "0-based month, defaults to the current month"
// @Param scope query string false "all, organized, registered or sponsored"
// @Param weekStart query string false "monday or sunday"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) Month(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	today := h.service.Today()
	year, err := intQuery(c, "year", today.Year)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := intQuery(c, "month", today.Month)
	if err != nil {
		response.Error(c, err)
		return
	}
	scope, err := scopeQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := dto.CalendarRequest{
		Year:      year,
		Month:     month,
		Scope:     scope,
		WeekStart: strings.ToLower(pickQuery(c, "weekStart", "week_start")),
	}
	if err := validate(h.validate, req); err != nil {
		response.Error(c, err)
		return
	}

	grid, err := h.service.Month(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid, nil, writeMeta(c, grid.Stale, ""))
}

// Navigate godoc
// @Summary Step the calendar one month
// @Tags Calendar
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "0-based month"
// @Param direction query string true "prev or next"
// @Success 200 {object} response.Envelope
// @Router /calendar/navigate [get]
func (h *CalendarHandler) Navigate(c *gin.Context) {
	year, err := intQuery(c, "year", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := intQuery(c, "month", -1)
	if err != nil {
		response.Error(c, err)
		return
	}

	req := dto.NavigateRequest{
		Year:      year,
		Month:     month,
		Direction: models.NavigationDirection(strings.ToLower(c.Query("direction"))),
	}
	if err := validate(h.validate, req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, h.service.Navigate(req), nil)
}
