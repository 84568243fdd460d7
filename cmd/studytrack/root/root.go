// Package root holds the studytrack command tree.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/model"
	"github.com/nhle/studytrack/internal/theme"
)

const Version = "0.1.0"

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the terminal dashboard.
func NewRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "studytrack",
		Short:         "Track study tasks, timers and leaderboard standings",
		Long:          "studytrack is a terminal study tracker: plan tasks per day, time them, and compare progress with friends.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, configPath)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&configPath, "config", model.DefaultConfigPath(), "Path to the config file")

	cmd.AddCommand(
		newTUICmd(&configPath),
		newLoginCmd(&configPath),
		newLogoutCmd(&configPath),
		newWhoamiCmd(&configPath),
		newAddCmd(&configPath),
		newStartCmd(&configPath),
		newDoneCmd(&configPath),
		newSkipCmd(&configPath),
		newTasksCmd(&configPath),
		newBoardCmd(&configPath),
	)
	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, theme.ErrorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
