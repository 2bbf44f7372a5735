package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/app"
)

// runApp builds dependencies and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd, envOptions{logToFile: true, withTutor: true})
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("tui started")
	defer e.log.Info("tui stopped")
	return app.Run(e.deps())
}
