package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadready/internal/achievements"
	"roadready/internal/app"
	"roadready/internal/catalog"
	"roadready/internal/mastery"
)

// runApp opens the store, loads the question bank, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	repo := catalog.NewRepository()
	if err := repo.Load(resolveQuestionsPath(cmd)); err != nil {
		return fmt.Errorf("load question bank: %w", err)
	}

	return app.Run(app.Options{
		Store:   st,
		Repo:    repo,
		Mastery: mastery.NewService(st),
		Badges:  achievements.NewService(st),
	})
}
