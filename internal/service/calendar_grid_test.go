package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sees-portal/internal/models"
)

func eventOn(id string, year int, month time.Month, day, hour int) models.Event {
	return models.Event{ID: id, Title: id, Start: time.Date(year, month, day, hour, 0, 0, 0, time.UTC)}
}

func inMonthDays(grid models.CalendarGrid) []int {
	var days []int
	for _, cell := range grid.Cells() {
		if cell.InCurrentMonth {
			days = append(days, cell.DayNumber)
		}
	}
	return days
}

func TestBuildCalendarGridShapeForEveryMonth(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			grid := BuildCalendarGrid(year, month, nil)
			cells := grid.Cells()
			require.Len(t, cells, models.GridCells)

			want := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
			days := inMonthDays(grid)
			require.Len(t, days, want, "year %d month %d", year, month)
			for i, day := range days {
				assert.Equal(t, i+1, day)
			}
		}
	}
}

func TestBuildCalendarGridLeapYears(t *testing.T) {
	assert.Len(t, inMonthDays(BuildCalendarGrid(2024, 1, nil)), 29)
	assert.Len(t, inMonthDays(BuildCalendarGrid(2023, 1, nil)), 28)
}

func TestBuildCalendarGridMarch2025Layout(t *testing.T) {
	grid := BuildCalendarGrid(2025, 2, nil)

	// March 1st 2025 is a Saturday: five February days lead the first row.
	leading := []int{24, 25, 26, 27, 28}
	for i, day := range leading {
		assert.Equal(t, day, grid[0][i].DayNumber)
		assert.False(t, grid[0][i].InCurrentMonth)
	}
	assert.Equal(t, 1, grid[0][5].DayNumber)
	assert.True(t, grid[0][5].InCurrentMonth)

	trailing := grid.Cells()[36:]
	for i, cell := range trailing {
		assert.Equal(t, i+1, cell.DayNumber)
		assert.False(t, cell.InCurrentMonth)
	}
}

func TestBuildCalendarGridMonthStartingOnMonday(t *testing.T) {
	grid := BuildCalendarGrid(2025, 8, nil)

	assert.Equal(t, 1, grid[0][0].DayNumber)
	assert.True(t, grid[0][0].InCurrentMonth)
	assert.Equal(t, 12, grid[5][6].DayNumber)
	assert.False(t, grid[5][6].InCurrentMonth)
}

func TestBuildCalendarGridMonthStartingOnSunday(t *testing.T) {
	grid := BuildCalendarGrid(2026, 1, nil)

	for i := 0; i < 6; i++ {
		assert.False(t, grid[0][i].InCurrentMonth)
	}
	assert.Equal(t, 31, grid[0][5].DayNumber)
	assert.Equal(t, 1, grid[0][6].DayNumber)
	assert.True(t, grid[0][6].InCurrentMonth)
}

func TestBuildCalendarGridBucketsEvents(t *testing.T) {
	events := []models.Event{
		eventOn("ides", 2025, time.March, 15, 10),
		eventOn("ides-evening", 2025, time.March, 15, 19),
		eventOn("april", 2025, time.April, 1, 9),
		eventOn("february", 2025, time.February, 28, 9),
		{ID: "undated"},
	}

	grid := BuildCalendarGrid(2025, 2, events)

	var holders []models.DayCell
	for _, cell := range grid.Cells() {
		for _, event := range cell.Events {
			if event.ID == "ides" {
				holders = append(holders, cell)
			}
		}
		if !cell.InCurrentMonth {
			assert.Empty(t, cell.Events)
		}
	}
	require.Len(t, holders, 1)
	assert.Equal(t, 15, holders[0].DayNumber)
	assert.True(t, holders[0].InCurrentMonth)
	require.Len(t, holders[0].Events, 2)
	assert.Equal(t, "ides", holders[0].Events[0].ID)
	assert.Equal(t, "ides-evening", holders[0].Events[1].ID)
}

func TestBuildCalendarGridWithSundayStart(t *testing.T) {
	grid := BuildCalendarGridWithOptions(2025, 2, nil, GridOptions{WeekStart: time.Sunday})

	assert.Equal(t, 23, grid[0][0].DayNumber)
	assert.Equal(t, 1, grid[0][6].DayNumber)
	assert.True(t, grid[0][6].InCurrentMonth)
}

func TestBuildCalendarGridNormalizesOverflowMonth(t *testing.T) {
	assert.Equal(t, BuildCalendarGrid(2026, 0, nil), BuildCalendarGrid(2025, 12, nil))
	assert.Equal(t, BuildCalendarGrid(2024, 11, nil), BuildCalendarGrid(2025, -1, nil))
}

func TestNavigateMonth(t *testing.T) {
	cases := []struct {
		name      string
		year      int
		month     int
		direction models.NavigationDirection
		wantYear  int
		wantMonth int
	}{
		{"january back", 2025, 0, models.NavigatePrev, 2024, 11},
		{"december forward", 2025, 11, models.NavigateNext, 2026, 0},
		{"mid year back", 2025, 6, models.NavigatePrev, 2025, 5},
		{"mid year forward", 2025, 6, models.NavigateNext, 2025, 7},
		{"unknown direction", 2025, 6, "sideways", 2025, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			year, month := NavigateMonth(tc.year, tc.month, tc.direction)
			assert.Equal(t, tc.wantYear, year)
			assert.Equal(t, tc.wantMonth, month)
		})
	}
}

func TestNormalizeMonth(t *testing.T) {
	year, month := NormalizeMonth(2025, -13)
	assert.Equal(t, 2023, year)
	assert.Equal(t, 11, month)

	year, month = NormalizeMonth(2025, 24)
	assert.Equal(t, 2027, year)
	assert.Equal(t, 0, month)
}
