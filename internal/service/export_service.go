package service

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/export"
)

// Export formats.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

var exportHeaders = []string{"day", "start", "end", "duration_min", "activity", "instructor", "room", "available", "capacity", "status"}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportFile is a rendered weekly schedule ready to be sent.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders weekly schedules as downloadable files.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger}
}

// Render converts week into the requested format.
func (s *ExportService) Render(week dto.WeekScheduleResponse, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportCSV
	}
	dataset := buildWeekDataset(week)
	base := fmt.Sprintf("schedule_%s_%s", week.StartDate, week.EndDate)

	var (
		data        []byte
		err         error
		contentType string
	)
	switch format {
	case ExportCSV:
		data, err = s.csv.Render(dataset)
		contentType = "text/csv; charset=utf-8"
	case ExportPDF:
		data, err = s.pdf.Render(dataset)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		s.logger.Error("schedule export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule")
	}
	return &ExportFile{Filename: base + "." + format, ContentType: contentType, Data: data}, nil
}

func buildWeekDataset(week dto.WeekScheduleResponse) export.Dataset {
	dataset := export.Dataset{
		Title:   week.Label + " (" + week.RangeLabel + ")",
		Headers: exportHeaders,
		GroupBy: "day",
	}
	for _, day := range week.Days {
		heading := day.DayName + " " + day.LongDate
		for _, record := range day.Sessions {
			status := string(record.Badge)
			if status == "" {
				status = "available"
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"day":          heading,
				"start":        record.StartTime,
				"end":          record.EndTime,
				"duration_min": strconv.Itoa(record.DurationMinutes),
				"activity":     record.Title,
				"instructor":   record.Instructor,
				"room":         record.Room,
				"available":    strconv.Itoa(record.Available),
				"capacity":     strconv.Itoa(record.Capacity),
				"status":       status,
			})
		}
	}
	return dataset
}
