package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/langtrainer/internal/deck"
	"github.com/abhisek/langtrainer/internal/deckgen"
	"github.com/abhisek/langtrainer/internal/llm"
	"github.com/abhisek/langtrainer/internal/logger"
)

var generateCmd = &cobra.Command{
	Use:   "generate <deck-id>",
	Short: "Author a new deck with a language model",
	Long: `Ask the configured LLM provider for a deck of fill-in-the-blank tasks.

Generated tasks are checked the same way a deck loaded from disk is; tasks
that fail or repeat an existing template are dropped. The deck is written as
tasks.<deck-id>.json in the deck directory unless --out is given.

The provider is chosen from [llm] in config.toml, LANGTRAINER_LLM_PROVIDER,
or the first API key found (Gemini, OpenAI, Anthropic, OpenRouter).`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("topic", "", "Grammar point or vocabulary theme (required)")
	generateCmd.Flags().String("title", "", "Deck title (defaults to the model's suggestion)")
	generateCmd.Flags().IntP("count", "n", 20, "Number of tasks to request")
	generateCmd.Flags().String("group", "", "Force this group on every task")
	generateCmd.Flags().String("type", "", "Force this type on every task")
	generateCmd.Flags().String("native", "Russian", "Language of the prompt translation")
	generateCmd.Flags().String("target", "Spanish", "Language being practiced")
	generateCmd.Flags().StringP("out", "o", "", "Output file")
	generateCmd.Flags().Bool("force", false, "Overwrite an existing file")
	_ = generateCmd.MarkFlagRequired("topic")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckID := args[0]
	topic, _ := cmd.Flags().GetString("topic")
	title, _ := cmd.Flags().GetString("title")
	count, _ := cmd.Flags().GetInt("count")
	group, _ := cmd.Flags().GetString("group")
	typ, _ := cmd.Flags().GetString("type")
	native, _ := cmd.Flags().GetString("native")
	target, _ := cmd.Flags().GetString("target")
	out, _ := cmd.Flags().GetString("out")
	force, _ := cmd.Flags().GetBool("force")

	dir, err := resolveDataDir(cmd)
	if err != nil {
		return fmt.Errorf("resolve deck directory: %w", err)
	}
	if out == "" {
		out = filepath.Join(dir, deckgen.FileName(deckID))
	}

	// Existing templates go into the prompt so the model avoids them.
	corpus, _, err := deck.LoadDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("load decks: %w", err)
	}
	var avoid []string
	corpus.Each(func(t *deck.Task) bool {
		avoid = append(avoid, t.PromptTemplate)
		return true
	})

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	l := logger.New("generate")
	cfg := llm.ConfigFromEnv().WithOverrides(
		settings.LLM.Provider,
		settings.LLM.Model,
		time.Duration(settings.LLM.TimeoutSeconds)*time.Second,
	)
	provider, err := llm.NewProvider(ctx, cfg, st.EventRepo(), l)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Generating %d tasks about %q with %s (%s)...\n", count, topic, cfg.Provider, provider.ModelID())

	gen := deckgen.New(provider, deckgen.DefaultConfig(newSuppressor()), l)
	res, err := gen.Generate(ctx, deckgen.Request{
		DeckID:         deckID,
		Title:          title,
		Topic:          topic,
		NativeLanguage: native,
		TargetLanguage: target,
		Count:          count,
		Group:          group,
		Type:           typ,
		AvoidPrompts:   avoid,
	})
	if res != nil {
		for _, r := range res.Rejected {
			fmt.Printf("  dropped (%s): %s: %s\n", r.Validator, r.Prompt, r.Message)
		}
	}
	if err != nil {
		return err
	}

	if err := deckgen.Write(res.Deck, out, force); err != nil {
		if errors.Is(err, deckgen.ErrFileExists) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}
	fmt.Printf("Wrote %d tasks to %s\n", len(res.Deck.Tasks), out)
	return nil
}
