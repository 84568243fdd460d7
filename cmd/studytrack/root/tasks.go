package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
	"github.com/nhle/studytrack/internal/timer"
	"github.com/nhle/studytrack/internal/ui/leaderboard"
)

// taskLine renders one task for list output.
func taskLine(t model.Task, now time.Time) string {
	status := theme.StatusStyle(t.Status).Render(fmt.Sprintf("%-9s", t.Status))
	var mins string
	switch {
	case t.Status == model.StatusActive:
		mins = fmt.Sprintf("%s / %d min", timer.FormatClock(timer.Elapsed(t.StartedAt, now)), t.EstimatedMinutes)
	case t.Status.Finished():
		mins = fmt.Sprintf("%d / %d min", t.ActualMinutes, t.EstimatedMinutes)
	default:
		mins = fmt.Sprintf("%d min", t.EstimatedMinutes)
	}
	return fmt.Sprintf("%s  %s  %s %s  %s",
		theme.DimmedStyle.Render(t.ID), status, t.Name,
		theme.SubjectStyle(t.Subject).Render(string(t.Subject)), mins)
}

func newTasksCmd(configPath *string) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the logged-in user's tasks for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(context.Background(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := s.requireUser()
			if err != nil {
				return err
			}
			now := time.Now()
			if date == "" {
				date = model.Today(now)
			}

			out := cmd.OutOrStdout()
			tasks := s.tracker.TasksForDate(u.ID, date)
			p := s.tracker.DailyProgress(u.ID, date)
			fmt.Fprintln(out, theme.PanelTitleStyle.UnsetMarginBottom().Render(
				fmt.Sprintf("%s · %d/%d done (%d%%)", date, p.Finished, p.Total, p.Percent)))
			if len(tasks) == 0 {
				fmt.Fprintln(out, theme.DimmedStyle.Render("No tasks planned."))
				return nil
			}
			for _, t := range tasks {
				fmt.Fprintln(out, taskLine(t, now))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date YYYY-MM-DD (default today)")
	return cmd
}

func newBoardCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Print the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := openSession(context.Background(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			var currentID string
			if u, ok := s.tracker.CurrentUser(); ok {
				currentID = u.ID
			}
			board := leaderboard.New(80, 0)
			board.SetUsers(s.tracker.Leaderboard(), currentID)
			fmt.Fprintln(cmd.OutOrStdout(), board.View())
			return nil
		},
	}
}
