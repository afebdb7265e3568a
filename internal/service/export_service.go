package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sees-portal/internal/dto"
	"github.com/noah-isme/sees-portal/internal/models"
	appErrors "github.com/noah-isme/sees-portal/pkg/errors"
	"github.com/noah-isme/sees-portal/pkg/export"
)

const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"Title", "Category", "Date", "Time", "Location", "Organizer", "Sponsor", "Fee", "Seats"}

type renderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset) ([]byte, error)
}

type filteredLister interface {
	All(ctx context.Context, session *models.Session, req dto.EventListRequest) ([]models.Event, bool, error)
}

// ExportResult is a rendered export ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

// ExportService renders the filtered event list as a downloadable file.
type ExportService struct {
	events    filteredLister
	renderers map[string]renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(events filteredLister, csv, pdf renderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	renderers := map[string]renderer{}
	if csv != nil {
		renderers[ExportFormatCSV] = csv
	}
	if pdf != nil {
		renderers[ExportFormatPDF] = pdf
	}
	return &ExportService{events: events, renderers: renderers, logger: logger, now: time.Now}
}

// Export renders every event matching req in the requested format.
func (s *ExportService) Export(ctx context.Context, session *models.Session, req dto.ExportRequest) (*ExportResult, error) {
	r, ok := s.renderers[req.Format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}

	events, _, err := s.events.All(ctx, session, req.EventListRequest)
	if err != nil {
		return nil, err
	}

	scope := req.Scope
	if scope == "" {
		scope = models.ScopeAll
	}
	dataset := BuildEventDataset(fmt.Sprintf("SEES events (%s)", scope), events)
	data, err := r.Render(dataset)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("events-%s-%s.%s", scope, s.now().UTC().Format("20060102-150405"), r.Extension())
	s.logger.Info("events exported",
		zap.String("format", req.Format),
		zap.String("scope", string(scope)),
		zap.Int("rows", len(events)),
	)
	return &ExportResult{Filename: filename, ContentType: r.ContentType(), Data: data, Rows: len(events)}, nil
}

// BuildEventDataset lays events out in export column order.
func BuildEventDataset(title string, events []models.Event) export.Dataset {
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		rows = append(rows, []string{
			event.Title,
			event.Category,
			event.Date(),
			event.Time(),
			event.Location,
			event.OrganizerName,
			event.SponsorName,
			event.FeeLabel(),
			strconv.Itoa(event.SeatsLeft()),
		})
	}
	return export.Dataset{Title: title, Headers: exportHeaders, Rows: rows}
}
