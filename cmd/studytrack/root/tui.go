package root

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/studytrack/internal/app"
)

func newTUICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, *configPath)
		},
	}
}

func runTUI(cmd *cobra.Command, configPath string) error {
	ctx := context.Background()
	s, cleanup, err := openSession(ctx, configPath)
	if err != nil {
		return err
	}
	defer cleanup()

	m := app.New(s.tracker, app.Options{
		Config:     *s.cfg,
		ConfigPath: configPath,
		Log:        s.log,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
