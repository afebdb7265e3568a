package service

import (
	"fmt"
	"time"

	"github.com/noah-isme/sees-portal/internal/models"
)

// GridOptions tunes grid construction.
type GridOptions struct {
	// WeekStart is the weekday shown in the first column. Zero value is Sunday,
	// so callers wanting the default should use DefaultGridOptions.
	WeekStart time.Weekday
}

// DefaultGridOptions starts weeks on Monday.
func DefaultGridOptions() GridOptions {
	return GridOptions{WeekStart: time.Monday}
}

// BuildCalendarGrid lays out a Monday-first month grid. month is 0-based.
func BuildCalendarGrid(year, month int, events []models.Event) models.CalendarGrid {
	return BuildCalendarGridWithOptions(year, month, events, DefaultGridOptions())
}

// BuildCalendarGridWithOptions lays out the month containing (year, month) as
// six weeks: padding days from the previous month, every day of the month with
// its events, then the first days of the next month until 42 cells are filled.
func BuildCalendarGridWithOptions(year, month int, events []models.Event, opts GridOptions) models.CalendarGrid {
	year, month = NormalizeMonth(year, month)
	goMonth := time.Month(month + 1)

	first := time.Date(year, goMonth, 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := (int(first.Weekday()) - int(opts.WeekStart) + 7) % 7
	daysInMonth := daysIn(year, goMonth)
	daysInPrevMonth := time.Date(year, goMonth, 0, 0, 0, 0, 0, time.UTC).Day()

	byDate := indexByDate(events)

	var grid models.CalendarGrid
	for i := 0; i < models.GridCells; i++ {
		cell := models.DayCell{Events: []models.Event{}}
		switch {
		case i < firstWeekday:
			cell.DayNumber = daysInPrevMonth - firstWeekday + 1 + i
		case i < firstWeekday+daysInMonth:
			cell.DayNumber = i - firstWeekday + 1
			cell.InCurrentMonth = true
			if matched := byDate[dateKey(year, month, cell.DayNumber)]; len(matched) > 0 {
				cell.Events = matched
			}
		default:
			cell.DayNumber = i - firstWeekday - daysInMonth + 1
		}
		grid[i/models.GridDays][i%models.GridDays] = cell
	}
	return grid
}

// NavigateMonth steps a 0-based month backwards or forwards, rolling the year.
// Unknown directions leave the position unchanged.
func NavigateMonth(year, month int, direction models.NavigationDirection) (int, int) {
	switch direction {
	case models.NavigatePrev:
		return NormalizeMonth(year, month-1)
	case models.NavigateNext:
		return NormalizeMonth(year, month+1)
	default:
		return NormalizeMonth(year, month)
	}
}

// NormalizeMonth folds a 0-based month outside 0..11 into the adjacent years.
func NormalizeMonth(year, month int) (int, int) {
	year += month / 12
	month %= 12
	if month < 0 {
		month += 12
		year--
	}
	return year, month
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateKey(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

func indexByDate(events []models.Event) map[string][]models.Event {
	byDate := make(map[string][]models.Event, len(events))
	for _, event := range events {
		key := event.Date()
		byDate[key] = append(byDate[key], event)
	}
	return byDate
}
