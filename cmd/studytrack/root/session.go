package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/theme"
)

func newLoginCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in as a known user",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("username is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := s.tracker.Login(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (@%s)\n", theme.StatValueStyle.Render(u.DisplayName), u.Username)
			return nil
		},
	}
}

func newLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx, *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.tracker.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and their stats",
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
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (@%s)\n", theme.StatValueStyle.Render(u.DisplayName), u.Username)
			fmt.Fprintf(out, "  rank      #%d\n", s.tracker.Rank(u.ID))
			fmt.Fprintf(out, "  tasks     %d\n", u.TasksCompleted)
			fmt.Fprintf(out, "  hours     %d\n", u.StudyHours())
			fmt.Fprintf(out, "  success   %d%%\n", u.SuccessRate)
			fmt.Fprintf(out, "  streak    %d\n", u.Streak)
			if a := u.CurrentActivity; a != nil {
				fmt.Fprintf(out, "  studying  %s (%s)\n", a.TaskName, a.Subject)
			}
			return nil
		},
	}
}
