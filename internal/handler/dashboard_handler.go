package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/response"
)

type dashboardService interface {
	ForRole(ctx context.Context, session *models.Session, role models.UserRole) (*dto.DashboardResponse, error)
}

// DashboardHandler serves the role dashboards.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// For returns a handler rendering role's dashboard. Route guards decide who may open it.
//
// @Summary Role dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/admin [get]
// @Router /dashboard/organizer [get]
// @Router /dashboard/attendee [get]
// @Router /dashboard/stakeholder [get]
func (h *DashboardHandler) For(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.service == nil {
			response.Error(c, appErrors.ErrInternal)
			return
		}
		session := sessionFromContext(c)
		if session == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			return
		}

		dashboard, err := h.service.ForRole(c.Request.Context(), session, role)
		if err != nil {
			response.Error(c, err)
			return
		}
		stale := dashboard.Events.Stale || dashboard.Calendar.Stale
		response.JSON(c, http.StatusOK, dashboard, nil, writeMeta(c, stale, dashboard.Events.State))
	}
}
