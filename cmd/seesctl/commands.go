package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	"github.com/noah-isme/sees-portal/internal/service"
)

type globalFlags struct {
	file     string
	timezone string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:          "seesctl",
		Short:        "Inspect SEES event exports offline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.file, "file", "f", "events.json", "events JSON file as returned by the SEES API")
	root.PersistentFlags().StringVar(&flags.timezone, "tz", "UTC", "timezone used to derive event dates")

	root.AddCommand(newGridCmd(flags), newFilterCmd(flags))
	return root
}

func newGridCmd(flags *globalFlags) *cobra.Command {
	now := time.Now()
	var (
		year      int
		month     int
		weekStart string
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the month grid (month is 0-based)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month < 0 || month > 11 {
				return fmt.Errorf("month must be between 0 and 11, got %d", month)
			}
			events, err := loadEvents(flags)
			if err != nil {
				return err
			}
			opts := service.DefaultGridOptions()
			switch strings.ToLower(weekStart) {
			case service.WeekStartMonday:
			case service.WeekStartSunday:
				opts.WeekStart = time.Sunday
			default:
				return fmt.Errorf("week start must be monday or sunday, got %q", weekStart)
			}
			grid := service.BuildCalendarGridWithOptions(year, month, events, opts)
			return printGrid(cmd.OutOrStdout(), year, month, opts.WeekStart, grid)
		},
	}
	cmd.Flags().IntVar(&year, "year", now.Year(), "calendar year")
	cmd.Flags().IntVar(&month, "month", int(now.Month())-1, "0-based month")
	cmd.Flags().StringVar(&weekStart, "week-start", service.WeekStartMonday, "monday or sunday")
	return cmd
}

func newFilterCmd(flags *globalFlags) *cobra.Command {
	criteria := models.EventFilter{}
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter and paginate events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			events, err := loadEvents(flags)
			if err != nil {
				return err
			}
			result := service.FilterEvents(events, criteria)
			return printPage(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&criteria.Query, "q", "", "match title, organizer, category or sponsor")
	cmd.Flags().StringVar(&criteria.Category, "category", "", "category substring")
	cmd.Flags().StringVar(&criteria.Date, "date", "", "exact date YYYY-MM-DD")
	cmd.Flags().StringVar(&criteria.Time, "time", "", "exact start time HH:MM")
	cmd.Flags().IntVar(&criteria.Page, "page", 1, "1-based page")
	return cmd
}

func loadEvents(flags *globalFlags) ([]models.Event, error) {
	loc, err := time.LoadLocation(flags.timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", flags.timezone, err)
	}
	raw, err := os.ReadFile(flags.file)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var list dto.UpstreamEventList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", flags.file, err)
	}
	return service.NewEventAdapter(loc).NormalizeAll(list), nil
}

func printGrid(out io.Writer, year, month int, weekStart time.Weekday, grid models.CalendarGrid) error {
	year, month = service.NormalizeMonth(year, month)
	fmt.Fprintf(out, "%s %d\n", time.Month(month+1), year)

	tw := tabwriter.NewWriter(out, 0, 0, 1, ' ', tabwriter.AlignRight)
	headers := make([]string, models.GridDays)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:3]
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t")+"\t")
	for _, week := range grid {
		cells := make([]string, len(week))
		for i, cell := range week {
			label := fmt.Sprintf("%d", cell.DayNumber)
			if !cell.InCurrentMonth {
				label = "(" + label + ")"
			}
			if len(cell.Events) > 0 {
				label += "*"
			}
			cells[i] = label
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	return tw.Flush()
}

func printPage(out io.Writer, result models.FilterResult) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTIME\tTITLE\tCATEGORY\tFEE\tSEATS")
	for _, event := range result.PageSlice {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n", event.Date(), event.Time(), event.Title, event.Category, event.FeeLabel(), event.SeatsLeft())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "page %d/%d (%d matching)\n", result.Page, result.TotalPages, len(result.Filtered))
	return err
}
