package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/noah-isme/timp-schedule-api/internal/dto"
)

func newCentersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "centers",
		Short: "List centers the API key can read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd.Context())
			defer cancel()

			centers, err := app.Centers.List(ctx)
			if err != nil {
				return err
			}
			if len(centers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render("No centers found."))
				return nil
			}
			rows := make([][]string, 0, len(centers))
			for _, center := range centers {
				rows = append(rows, []string{center.Name, center.UUID})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"NAME", "UUID"}, rows))
			return nil
		},
	}
}

func newWeekCmd(app *App) *cobra.Command {
	var (
		query  dto.WeekQuery
		output string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the sessions of a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd.Context())
			defer cancel()

			switch output {
			case "csv", "pdf":
				query.Format = output
				exported, err := app.Schedule.Export(ctx, query, app.now())
				if err != nil {
					return err
				}
				target := file
				if target == "" {
					target = exported.Filename
				}
				if err := os.WriteFile(target, exported.Data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", target, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
				return nil
			case "json":
				result, err := app.Schedule.Week(ctx, query, app.now())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result.Data)
			case "table", "":
				result, err := app.Schedule.Week(ctx, query, app.now())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), renderWeek(result.Data))
				return nil
			default:
				return fmt.Errorf("unknown output %q (want table, json, csv or pdf)", output)
			}
		},
	}

	cmd.Flags().IntVarP(&query.WeekOffset, "offset", "o", 0, "Weeks relative to the current one")
	cmd.Flags().StringVar(&query.CenterUUID, "center", "", "Center UUID, defaults to TIMP_CENTER_UUID")
	cmd.Flags().StringVar(&output, "output", "table", "Output: table, json, csv or pdf")
	cmd.Flags().StringVar(&file, "file", "", "Destination file for csv or pdf output")

	return cmd
}

func newCheckCmd(app *App) *cobra.Command {
	var center string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the API key by counting this week's sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := app.context(cmd.Context())
			defer cancel()

			result, err := app.Centers.CheckConnection(ctx, center, app.now())
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), styleRed.Render("✗ "+err.Error()))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), styleGreen.Render("✓ "+result.Message))
			fmt.Fprintln(cmd.OutOrStdout(), styleDim.Render(fmt.Sprintf("center %s, %s to %s", result.CenterUUID, result.StartDate, result.EndDate)))
			return nil
		},
	}

	cmd.Flags().StringVar(&center, "center", "", "Center UUID, defaults to TIMP_CENTER_UUID")
	return cmd
}

func renderWeek(week dto.WeekScheduleResponse) string {
	out := header(week.Label+"  "+week.RangeLabel) + "\n"
	if week.EmptyMessage != "" {
		return out + styleDim.Render(week.EmptyMessage) + "\n"
	}
	for _, day := range week.Days {
		if len(day.Sessions) == 0 {
			continue
		}
		title := day.DayName + " " + day.LongDate
		if week.SelectedDate != nil && *week.SelectedDate == day.Date {
			title = "▸ " + title
		}
		out += "\n" + styleHeader.Render(title) + "\n"
		rows := make([][]string, 0, len(day.Sessions))
		for _, record := range day.Sessions {
			seats := ""
			if record.ShowCapacity {
				seats = strconv.Itoa(record.Available) + "/" + strconv.Itoa(record.Capacity)
			}
			rows = append(rows, []string{
				record.StartTime + "-" + record.EndTime,
				record.Title,
				record.Instructor,
				record.Room,
				seats,
				badge(record),
			})
		}
		out += renderTable([]string{"TIME", "ACTIVITY", "INSTRUCTOR", "ROOM", "SEATS", ""}, rows)
	}
	return out
}
