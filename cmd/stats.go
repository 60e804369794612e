package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"roadready/internal/mastery"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		stats := st.Stats(ctx)
		m := mastery.NewService(st)

		if u := st.User(ctx); u != nil {
			fmt.Printf("User:            %s\n", u.Name)
		}
		fmt.Printf("Attempts:        %d\n", stats.TotalAttempts)
		fmt.Printf("Correct:         %d\n", stats.TotalCorrect)
		fmt.Printf("Accuracy:        %.0f%%\n", stats.Accuracy()*100)
		fmt.Printf("Tests taken:     %d\n", stats.TestsTaken)
		fmt.Printf("Current streak:  %d\n", stats.CurrentStreak)
		fmt.Printf("Best streak:     %d\n", stats.LongestStreak)
		fmt.Printf("Mastered:        %d\n", len(m.MasteredIDs(ctx)))
		fmt.Printf("To review:       %d\n", len(m.MissedIDs(ctx)))

		if len(stats.CategoryBreakdown) > 0 {
			fmt.Println("\nCategories:")
			names := make([]string, 0, len(stats.CategoryBreakdown))
			for name := range stats.CategoryBreakdown {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				cs := stats.CategoryBreakdown[name]
				var accuracy float64
				if cs.Attempts > 0 {
					accuracy = float64(cs.Correct) / float64(cs.Attempts) * 100
				}
				fmt.Printf("  %-18s %d attempts, %.0f%% accuracy, %d mastered\n",
					name, cs.Attempts, accuracy, cs.Mastered)
			}
		}
		return nil
	},
}
