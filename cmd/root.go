package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lashon-study/lashon/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "lashon",
	Short: "Hebrew vocabulary trainer",
	Long: "Lashon (לשון) is a terminal app for practicing Hebrew vocabulary with " +
		"daily quizzes, a placement test, word games, and an optional LLM tutor.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LASHON_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config/config.yaml or $XDG_CONFIG_HOME/lashon/config.yaml)")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(placementCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tutorCmd)
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDSN returns the database location using --db (highest priority),
// then store.dsn from config, then the default XDG path for SQLite.
func resolveDSN(cmd *cobra.Command, driver, dsn string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if dsn != "" {
		if driver == "" || driver == store.DriverSQLite {
			return dsn, store.EnsureDir(dsn)
		}
		return dsn, nil
	}
	return store.DefaultDBPath()
}
