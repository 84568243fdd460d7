package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/timer"
)

func taskIDArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("task id is required")
	}
	return nil
}

// lifecycleCmd runs one tracker transition and reports the resulting task.
func lifecycleCmd(configPath *string, use, short, verb string, run func(ctx context.Context, s *session, id string) (model.Task, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  taskIDArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := run(ctx, s, args[0])
			if err != nil && task.ID == "" {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, taskLine(task, time.Now()))
			return err
		},
	}
}

func newStartCmd(configPath *string) *cobra.Command {
	return lifecycleCmd(configPath, "start <task-id>", "Start a pending task", "Started",
		func(ctx context.Context, s *session, id string) (model.Task, error) {
			return s.tracker.StartTask(ctx, id)
		})
}

func newSkipCmd(configPath *string) *cobra.Command {
	return lifecycleCmd(configPath, "skip <task-id>", "Skip a pending task", "Skipped",
		func(ctx context.Context, s *session, id string) (model.Task, error) {
			return s.tracker.SkipTask(ctx, id)
		})
}

func newDoneCmd(configPath *string) *cobra.Command {
	var minutes int
	var cmd *cobra.Command

	cmd = lifecycleCmd(configPath, "done <task-id>", "Finish the active task", "Finished",
		func(ctx context.Context, s *session, id string) (model.Task, error) {
			mins := minutes
			if !cmd.Flags().Changed("minutes") {
				task, _ := s.tracker.Task(id)
				mins = timer.MinutesTaken(timer.Elapsed(task.StartedAt, time.Now()))
			}
			return s.tracker.CompleteTask(ctx, id, mins)
		})
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Minutes taken (default: elapsed since start)")
	return cmd
}
