package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/tracker"
)

func newAddCmd(configPath *string) *cobra.Command {
	var subject string
	var estimate int
	var date string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a study task for the logged-in user",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("task name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := model.ParseSubject(subject)
			if err != nil {
				return err
			}
			if date == "" {
				date = model.Today(time.Now())
			}

			ctx := context.Background()
			s, cleanup, err := openSession(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			task, err := s.tracker.AddTask(ctx, tracker.NewTask{
				Name:             strings.Join(args, " "),
				Subject:          sub,
				EstimatedMinutes: estimate,
				Date:             date,
			})
			if err != nil && task.ID == "" {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", taskLine(task, time.Now()))
			return err
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", string(model.SubjectOther), "Subject (maths|physics|chemistry|other)")
	cmd.Flags().IntVarP(&estimate, "estimate", "e", 30, "Estimated minutes")
	cmd.Flags().StringVar(&date, "date", "", "Planned date YYYY-MM-DD (default today)")

	return cmd
}
