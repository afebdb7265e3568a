package dto

import "github.com/noah-isme/sees-portal/internal/models"

// CalendarRequest selects a month grid. Month is 0-based.
type CalendarRequest struct {
	Year      int               `validate:"gte=1,lte=9999"`
	Month     int               `validate:"gte=0,lte=11"`
	Scope     models.EventScope
	WeekStart string `validate:"omitempty,oneof=monday sunday"`
}

// NavigateRequest steps a month view.
type NavigateRequest struct {
	Year      int                        `validate:"gte=1,lte=9999"`
	Month     int                        `validate:"gte=0,lte=11"`
	Direction models.NavigationDirection `validate:"required,oneof=prev next"`
}

// MonthPosition is a (year, 0-based month) pair.
type MonthPosition struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// CalendarCell is a grid cell with display-ready events.
type CalendarCell struct {
	DayNumber      int         `json:"dayNumber"`
	InCurrentMonth bool        `json:"inCurrentMonth"`
	Events         []EventView `json:"events"`
}

// CalendarResponse is a month grid ready for rendering.
type CalendarResponse struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	WeekStart string           `json:"weekStart"`
	Weekdays  []string         `json:"weekdays"`
	Weeks     [][]CalendarCell `json:"weeks"`
	Prev      MonthPosition    `json:"prev"`
	Next      MonthPosition    `json:"next"`
	Stale     bool             `json:"stale"`
}

// DashboardResponse combines the first list page and the current month for a role.
type DashboardResponse struct {
	Role     models.UserRole   `json:"role"`
	Scope    models.EventScope `json:"scope"`
	Events   EventListResponse `json:"events"`
	Calendar CalendarResponse  `json:"calendar"`
}

// ExportRequest selects an export format for the filtered list.
type ExportRequest struct {
	EventListRequest
	Format string `validate:"required,oneof=csv pdf"`
}
