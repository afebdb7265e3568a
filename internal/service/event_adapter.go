package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// EventAdapter normalises upstream payloads into models.Event.
type EventAdapter struct {
	loc *time.Location
}

// NewEventAdapter builds an adapter that renders timestamps in loc (UTC when nil).
func NewEventAdapter(loc *time.Location) *EventAdapter {
	if loc == nil {
		loc = time.UTC
	}
	return &EventAdapter{loc: loc}
}

// NormalizeAll adapts a whole upstream list, preserving order.
func (a *EventAdapter) NormalizeAll(raw []dto.UpstreamEvent) []models.Event {
	events := make([]models.Event, 0, len(raw))
	for _, item := range raw {
		events = append(events, a.Normalize(item))
	}
	return events
}

// Normalize adapts a single upstream event. Missing fields become zero values.
func (a *EventAdapter) Normalize(raw dto.UpstreamEvent) models.Event {
	event := models.Event{
		ID:               firstString(raw, "id", "_id", "eventId", "event_id"),
		Title:            firstString(raw, "title", "name", "eventName"),
		Category:         firstString(raw, "category", "eventCategory", "type"),
		Location:         firstString(raw, "location", "venue"),
		Description:      firstString(raw, "description", "details"),
		OrganizerName:    personName(raw, "organizerName", "organizer_name", "organizer"),
		OrganizationName: personName(raw, "organizationName", "organization_name", "organization"),
		SponsorName:      personName(raw, "sponsorName", "sponsor_name", "sponsor"),
		Capacity:         nonNegative(firstInt(raw, "capacity", "maxAttendees", "max_attendees")),
		Registrations:    nonNegative(registrations(raw)),
		FeeCents:         feeCents(raw),
	}

	event.Start = a.timestamp(raw, startFields)
	event.End = a.timestamp(raw, endFields)
	if event.End.IsZero() {
		event.End = event.Start
	}
	return event
}

// timestampFields lists where a timestamp may live: split date/time pairs are
// tried before single fields so a separate clock value is not dropped.
type timestampFields struct {
	pairs  [][2]string
	single []string
}

var (
	startFields = timestampFields{
		pairs:  [][2]string{{"date", "time"}, {"startDate", "startTime"}, {"start_date", "start_time"}},
		single: []string{"start", "startDate", "start_date", "startTime", "date"},
	}
	endFields = timestampFields{
		pairs:  [][2]string{{"endDate", "endTime"}, {"end_date", "end_time"}},
		single: []string{"end", "endDate", "end_date", "endTime"},
	}
)

func (a *EventAdapter) timestamp(raw dto.UpstreamEvent, fields timestampFields) time.Time {
	for _, pair := range fields.pairs {
		date, clock := stringValue(raw[pair[0]]), stringValue(raw[pair[1]])
		if date == "" || clock == "" {
			continue
		}
		if ts, ok := a.parseTimestamp(date + "T" + clock); ok {
			return ts
		}
	}
	for _, key := range fields.single {
		if ts, ok := a.parseTimestamp(stringValue(raw[key])); ok {
			return ts
		}
	}
	return time.Time{}
}

func (a *EventAdapter) parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		ts, err := time.ParseInLocation(layout, value, a.loc)
		if err == nil {
			return ts.In(a.loc), true
		}
	}
	return time.Time{}, false
}

func firstString(raw dto.UpstreamEvent, keys ...string) string {
	for _, key := range keys {
		if value := stringValue(raw[key]); value != "" {
			return value
		}
	}
	return ""
}

// personName reads a flat name field or the "name" of a nested object.
func personName(raw dto.UpstreamEvent, flatKey, snakeKey, objectKey string) string {
	if name := firstString(raw, flatKey, snakeKey); name != "" {
		return name
	}
	switch nested := raw[objectKey].(type) {
	case map[string]interface{}:
		if name := stringValue(nested["name"]); name != "" {
			return name
		}
		first, last := stringValue(nested["firstName"]), stringValue(nested["lastName"])
		return strings.TrimSpace(first + " " + last)
	case string:
		return strings.TrimSpace(nested)
	}
	return ""
}

func registrations(raw dto.UpstreamEvent) int {
	if n, ok := intValue(raw["registrations"]); ok {
		return n
	}
	if list, ok := raw["registrations"].([]interface{}); ok {
		return len(list)
	}
	if list, ok := raw["attendees"].([]interface{}); ok {
		return len(list)
	}
	return firstInt(raw, "registrationCount", "registered", "registration_count")
}

func feeCents(raw dto.UpstreamEvent) int64 {
	for _, key := range []string{"fee", "price", "ticketPrice"} {
		amount, ok := floatValue(raw[key])
		if !ok {
			continue
		}
		if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return 0
		}
		return int64(math.Round(amount * 100))
	}
	return 0
}

func firstInt(raw dto.UpstreamEvent, keys ...string) int {
	for _, key := range keys {
		if n, ok := intValue(raw[key]); ok {
			return n
		}
	}
	return 0
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func stringValue(v interface{}) string {
	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case fmt.Stringer:
		return typed.String()
	default:
		return ""
	}
}

func intValue(v interface{}) (int, bool) {
	f, ok := floatValue(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func floatValue(v interface{}) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(typed), "$"), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
