package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"roadready/internal/catalog"
	"roadready/internal/mastery"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "List questions waiting in the review queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		repo := catalog.NewRepository()
		if err := repo.Load(resolveQuestionsPath(cmd)); err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		ctx := cmd.Context()
		missed := mastery.NewService(st).MissedIDs(ctx)
		if len(missed) == 0 {
			fmt.Println("Nothing to review. Every missed question has been re-mastered.")
			return nil
		}

		fmt.Printf("%d question(s) to review:\n\n", len(missed))
		for _, id := range missed {
			q, ok := repo.ByID(id)
			if !ok {
				continue
			}
			fmt.Printf("  [%s] %s\n", q.Category, q.Prompt)
		}
		fmt.Println("\nRun a review session from the app to clear these.")
		return nil
	},
}
