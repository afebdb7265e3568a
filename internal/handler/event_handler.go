package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/middleware"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/palette"
	"github.com/noah-isme/sees-portal/pkg/response"
)

type listingService interface {
	Page(ctx context.Context, session *models.Session, req dto.EventListRequest) (*dto.EventListResponse, error)
	Categories() []palette.Entry
}

type sessionCache interface {
	InvalidateSession(ctx context.Context, session *models.Session) error
}

type exportService interface {
	Export(ctx context.Context, session *models.Session, req dto.ExportRequest) (*service.ExportResult, error)
}

// EventHandler serves the filtered event list and its exports.
type EventHandler struct {
	listing  listingService
	exports  exportService
	cache    sessionCache
	validate *validator.Validate
}

// NewEventHandler constructs the handler. cache may be nil, in which case
// refresh requests just load the list.
func NewEventHandler(listing listingService, exports exportService, cache sessionCache, validate *validator.Validate) *EventHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &EventHandler{listing: listing, exports: exports, cache: cache, validate: validate}
}

// List godoc
// @Summary Filtered, paginated events
// @Tags Events
// @Produce json
// @Param q query string false "Matches title, organizer, category or sponsor"
// @Param category query string false "Category substring"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param time query string false "Exact start time (HH:MM)"
// @Param page query int false "1-based page"
// @Param scope query string false "all, organized, registered or sponsored"
// @Param refresh query bool false "Drop the caller's cached lists before loading"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	req, err := eventListRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := validate(h.validate, req); err != nil {
		response.Error(c, err)
		return
	}
	refresh, err := boolQuery(c, "refresh")
	if err != nil {
		response.Error(c, err)
		return
	}
	if refresh && h.cache != nil {
		if err := h.cache.InvalidateSession(c.Request.Context(), session); err != nil {
			_ = c.Error(err)
		}
	}

	page, err := h.listing.Page(c.Request.Context(), session, req)
	if err != nil {
		middleware.SetViewState(c, models.ViewStateErrored)
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{
		Page:       page.Filter.Page,
		PageSize:   models.EventPageSize,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
	response.JSON(c, http.StatusOK, page, pagination, writeMeta(c, page.Stale, page.State))
}

// Categories godoc
// @Summary Category color palette
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /events/categories [get]
func (h *EventHandler) Categories(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.listing.Categories(), nil)
}

// Export godoc
// @Summary Export the filtered event list
// @Tags Events
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Param q query string false "Matches title, organizer, category or sponsor"
// @Param category query string false "Category substring"
// @Param date query string false "Exact date (YYYY-MM-DD)"
// @Param time query string false "Exact start time (HH:MM)"
// @Param scope query string false "all, organized, registered or sponsored"
// @Success 200 {file} file
// @Router /events/export [get]
func (h *EventHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	session := sessionFromContext(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	list, err := eventListRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req := dto.ExportRequest{EventListRequest: list, Format: strings.ToLower(c.Query("format"))}
	if err := validate(h.validate, req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.exports.Export(c.Request.Context(), session, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Data)
}
