package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show answer statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()
		st, err := repo.Stats(ctx)
		if err != nil {
			return fmt.Errorf("query stats: %w", err)
		}
		if st.Answered == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Printf("Answered:  %d\n", st.Answered)
		fmt.Printf("Correct:   %d (%.0f%%)\n", st.Correct, st.Accuracy()*100)
		fmt.Printf("Sessions:  %d\n", st.Sessions)
		fmt.Printf("Last:      %s\n", st.LastAnswered.Local().Format("2006-01-02 15:04"))

		decks, err := repo.DeckStats(ctx)
		if err != nil {
			return fmt.Errorf("query deck stats: %w", err)
		}
		fmt.Println()
		fmt.Printf("%-24s  %8s  %8s  %8s\n", "Deck", "Answered", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 56))
		for _, d := range decks {
			fmt.Printf("%-24s  %8d  %8d  %7.0f%%\n",
				truncate(d.DeckID, 24), d.Answered, d.Correct, d.Accuracy()*100)
		}
		return nil
	},
}
