package service

import (
	"strings"

	"github.com/noah-isme/sees-portal/internal/models"
)

// FilterEvents narrows events by the list criteria and cuts the requested page.
// The input slice is neither mutated nor reordered.
func FilterEvents(events []models.Event, criteria models.EventFilter) models.FilterResult {
	query := strings.ToLower(criteria.Query)
	category := strings.ToLower(criteria.Category)

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if query != "" && !matchesQuery(event, query) {
			continue
		}
		if category != "" && !strings.Contains(strings.ToLower(event.Category), category) {
			continue
		}
		if criteria.Date != "" && event.Date() != criteria.Date {
			continue
		}
		if criteria.Time != "" && event.Time() != criteria.Time {
			continue
		}
		filtered = append(filtered, event)
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	return models.FilterResult{
		Filtered:   filtered,
		TotalPages: TotalPages(len(filtered)),
		Page:       page,
		PageSlice:  PageSlice(filtered, page),
	}
}

// TotalPages is ceil(count / EventPageSize).
func TotalPages(count int) int {
	return (count + models.EventPageSize - 1) / models.EventPageSize
}

// PageSlice returns the 1-based page of events; out-of-range pages are empty.
func PageSlice(events []models.Event, page int) []models.Event {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * models.EventPageSize
	if start >= len(events) {
		return []models.Event{}
	}
	end := start + models.EventPageSize
	if end > len(events) {
		end = len(events)
	}
	return events[start:end]
}

func matchesQuery(event models.Event, query string) bool {
	for _, field := range []string{event.Title, event.OrganizerName, event.Category, event.SponsorName} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
