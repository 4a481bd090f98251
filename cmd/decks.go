package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langtrainer/internal/deck"
)

var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Inspect the deck directory",
}

var decksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded decks",
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, report, dir, err := loadDecks(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Directory: %s\n", dir)
		fmt.Println(report.Status())
		if len(corpus) == 0 {
			fmt.Println("No decks found.")
			return nil
		}

		fmt.Println()
		fmt.Printf("%-24s  %-32s  %6s  %s\n", "ID", "Title", "Tasks", "Format")
		fmt.Println(strings.Repeat("─", 76))
		for _, d := range corpus {
			fmt.Printf("%-24s  %-32s  %6d  %s\n",
				truncate(d.ID, 24), truncate(d.Title, 32), len(d.Tasks), d.FormatVersion)
		}
		for _, f := range report.Failed {
			fmt.Printf("\nskipped %s: %v", f.Path, f.Err)
		}
		if len(report.Failed) > 0 {
			fmt.Println()
		}
		return nil
	},
}

var decksValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check decks for data defects",
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, report, _, err := loadDecks(cmd)
		if err != nil {
			return err
		}

		problems := 0
		for _, f := range report.Failed {
			fmt.Printf("%s: %v\n", f.Path, f.Err)
			problems++
		}
		for _, d := range deck.Validate(corpus) {
			fmt.Println(d.String())
			problems++
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		fmt.Printf("%d decks, %d tasks: OK\n", len(corpus), corpus.TaskCount())
		return nil
	},
}

func loadDecks(cmd *cobra.Command) (deck.Corpus, deck.LoadReport, string, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, deck.LoadReport{}, "", fmt.Errorf("resolve deck directory: %w", err)
	}
	corpus, report, err := deck.LoadDir(cmd.Context(), dir)
	if err != nil {
		return nil, report, dir, fmt.Errorf("load decks: %w", err)
	}
	return corpus, report, dir, nil
}

func init() {
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksValidateCmd)
}
