package models

// EventPageSize is the fixed number of events on a list page.
const EventPageSize = 5

// EventFilter carries the list view criteria. Empty strings disable a criterion.
type EventFilter struct {
	Query    string `json:"q"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Page     int    `json:"page"`
}

// Reset clears every criterion and returns to the first page.
func (f *EventFilter) Reset() {
	*f = EventFilter{Page: 1}
}

// IsEmpty reports whether no criterion narrows the list.
func (f EventFilter) IsEmpty() bool {
	return f.Query == "" && f.Category == "" && f.Date == "" && f.Time == ""
}

// FilterResult is the output of the filter pipeline.
type FilterResult struct {
	Filtered   []Event
	TotalPages int
	Page       int
	PageSlice  []Event
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}

// ViewState mirrors the list view lifecycle so clients can render banners.
type ViewState string

const (
	ViewStateIdle      ViewState = "idle"
	ViewStateLoading   ViewState = "loading"
	ViewStateLoaded    ViewState = "loaded"
	ViewStateErrored   ViewState = "errored"
	ViewStateFiltering ViewState = "filtering"
)

// EventScope selects which upstream event collection a view shows.
type EventScope string

const (
	ScopeAll        EventScope = "all"
	ScopeOrganized  EventScope = "organized"
	ScopeRegistered EventScope = "registered"
	ScopeSponsored  EventScope = "sponsored"
)

// Valid reports whether the scope is known.
func (s EventScope) Valid() bool {
	switch s {
	case ScopeAll, ScopeOrganized, ScopeRegistered, ScopeSponsored:
		return true
	default:
		return false
	}
}
