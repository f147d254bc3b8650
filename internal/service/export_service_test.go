package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
	appErrors "github.com/noah-isme/timp-schedule-api/pkg/errors"
	"github.com/noah-isme/timp-schedule-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) {
	return nil, errors.New("disk full")
}

func exportWeekFixture(t *testing.T) dto.WeekScheduleResponse {
	t.Helper()
	loc := madrid(t)
	now := time.Date(2024, 3, 4, 7, 0, 0, 0, loc)
	yoga := sessionAt("yoga", time.Date(2024, 3, 5, 9, 0, 0, 0, loc))
	yoga.Name = "Yoga"
	yoga.Professional.Name = "Ana"
	yoga.Room.Name = "Sala 1"
	spin := sessionAt("spin", time.Date(2024, 3, 6, 18, 0, 0, 0, loc))
	spin.Name = "Spinning"
	spin.BookingsCount = 10

	view := GroupWeek(WeekWindowFor(now, 0, loc), 0, []models.Session{yoga, spin}, now, loc)
	return NewSessionFormatter(FormatterConfig{Locale: "es", LowSeatsThreshold: 3}, loc).FormatWeek(view, "", nil)
}

func TestExportServiceRendersCSV(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	file, err := svc.Render(exportWeekFixture(t), "CSV")
	require.NoError(t, err)
	assert.Equal(t, "schedule_2024-03-04_2024-03-10.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "day,start,end,duration_min,activity,instructor,room,available,capacity,status", lines[0])
	assert.Equal(t, "Martes 5 de marzo,09:00,10:00,60,Yoga,Ana,Sala 1,10,10,available", lines[1])
	assert.Contains(t, lines[2], ",full")
}

func TestExportServiceRendersPDF(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	file, err := svc.Render(exportWeekFixture(t), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(nil, nil, nil)

	_, err := svc.Render(exportWeekFixture(t), "xlsx")
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedMedia))
}

func TestExportServiceWrapsRendererFailure(t *testing.T) {
	svc := NewExportService(failingRenderer{}, failingRenderer{}, nil)

	_, err := svc.Render(exportWeekFixture(t), "csv")
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
