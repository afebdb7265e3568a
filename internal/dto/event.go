package dto

import (
	"time"

	"github.com/noah-isme/sees-portal/internal/models"
)

// EventListRequest carries list view query parameters.
type EventListRequest struct {
	Scope    models.EventScope
	Query    string
	Category string
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Time     string `validate:"omitempty,datetime=15:04"`
	Page     int    `validate:"gte=1"`
}

// Filter converts the request into pipeline criteria.
func (r EventListRequest) Filter() models.EventFilter {
	return models.EventFilter{Query: r.Query, Category: r.Category, Date: r.Date, Time: r.Time, Page: r.Page}
}

// EventView is an event with its display fields resolved.
type EventView struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	CategoryColor    string    `json:"categoryColor"`
	Location         string    `json:"location"`
	Description      string    `json:"description"`
	Start            time.Time `json:"start"`
	End              time.Time `json:"end"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	OrganizerName    string    `json:"organizerName"`
	OrganizationName string    `json:"organizationName"`
	SponsorName      string    `json:"sponsorName,omitempty"`
	Capacity         int       `json:"capacity"`
	Registrations    int       `json:"registrations"`
	SeatsLeft        int       `json:"seatsLeft"`
	FeeLabel         string    `json:"feeLabel"`
}

// EventListResponse is a filtered page of events.
type EventListResponse struct {
	Scope      models.EventScope  `json:"scope"`
	Filter     models.EventFilter `json:"filter"`
	Events     []EventView        `json:"events"`
	TotalPages int                `json:"totalPages"`
	TotalCount int                `json:"totalCount"`
	State      models.ViewState   `json:"state"`
	Stale      bool               `json:"stale"`
}
