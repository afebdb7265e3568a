package models

const (
	// GridWeeks is fixed so the calendar keeps a constant height across months.
	GridWeeks = 6
	// GridDays is the number of columns in a grid week.
	GridDays = 7
	// GridCells is the total cell count of every grid.
	GridCells = GridWeeks * GridDays
)

// DayCell is one square of the month grid.
type DayCell struct {
	DayNumber      int     `json:"dayNumber"`
	InCurrentMonth bool    `json:"inCurrentMonth"`
	Events         []Event `json:"events"`
}

// CalendarGrid is GridWeeks rows of GridDays cells, ordered from the configured week start.
type CalendarGrid [GridWeeks][GridDays]DayCell

// Cells flattens the grid row by row.
func (g *CalendarGrid) Cells() []DayCell {
	cells := make([]DayCell, 0, GridCells)
	for _, week := range g {
		cells = append(cells, week[:]...)
	}
	return cells
}

// NavigationDirection moves a month view backwards or forwards.
type NavigationDirection string

const (
	NavigatePrev NavigationDirection = "prev"
	NavigateNext NavigationDirection = "next"
)
