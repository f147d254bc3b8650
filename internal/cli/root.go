package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
	"github.com/noah-isme/timp-schedule-api/internal/models"
	"github.com/noah-isme/timp-schedule-api/internal/service"
)

// CenterService is the center surface the CLI needs.
type CenterService interface {
	List(ctx context.Context) ([]models.Center, error)
	CheckConnection(ctx context.Context, centerUUID string, now time.Time) (*dto.ConnectionCheckResponse, error)
}

// ScheduleService is the schedule surface the CLI needs.
type ScheduleService interface {
	Week(ctx context.Context, query dto.WeekQuery, now time.Time) (*service.ScheduleResult[dto.WeekScheduleResponse], error)
	Export(ctx context.Context, query dto.WeekQuery, now time.Time) (*service.ExportFile, error)
}

// App holds the services used by CLI commands.
type App struct {
	Centers  CenterService
	Schedule ScheduleService
	Now      func() time.Time
	Timeout  time.Duration
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if a.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, a.Timeout)
}

// NewRootCmd creates the top-level "schedulectl" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "schedulectl",
		Short:         "Inspect TIMP class schedules from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newCentersCmd(app),
		newWeekCmd(app),
		newCheckCmd(app),
	)

	return root
}
