package cmd

import (
	"github.com/spf13/cobra"

	"roadready/internal/catalog"
	"roadready/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "roadready",
	Short: "Driver's permit test trainer",
	Long:  "RoadReady is a terminal trainer for the written driver's permit test: practice tests, missed-question review, and per-question mastery tracking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ROADREADY_DB env var)")
	rootCmd.PersistentFlags().String("questions", "", "Path to question bank JSON (overrides ROADREADY_QUESTIONS env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ROADREADY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolveQuestionsPath returns the question bank path using --questions,
// then ROADREADY_QUESTIONS, then the bundled default.
func resolveQuestionsPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		return p
	}
	return catalog.DefaultQuestionsPath()
}

// openStore resolves the DB path and opens the record store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
