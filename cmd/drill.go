package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langtrainer/internal/drill"
	"github.com/abhisek/langtrainer/internal/logger"
	"github.com/abhisek/langtrainer/internal/session"
)

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Answer a few exercises on the command line",
	Long: `Run a short drill without the TUI. Each exercise is printed with its
numbered choices; answer with a number or by typing the word. An empty line
skips the exercise.

Answers and recently seen tasks are recorded unless --no-save is set.`,
	RunE: runDrill,
}

func init() {
	drillCmd.Flags().IntP("count", "n", 5, "Number of exercises")
	drillCmd.Flags().Bool("no-save", false, "Do not record answers or recent tasks")
}

func runDrill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	count, _ := cmd.Flags().GetInt("count")
	noSave, _ := cmd.Flags().GetBool("no-save")
	if count <= 0 {
		return fmt.Errorf("--count must be positive, got %d", count)
	}

	l := logger.New("drill")
	var runner *session.Runner
	if noSave {
		r, err := newRunner(cmd, nil, l)
		if err != nil {
			return err
		}
		runner = r
	} else {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		r, err := newRunner(cmd, st, l)
		if err != nil {
			return err
		}
		runner = r
	}

	if err := runner.Load(ctx); err != nil {
		return fmt.Errorf("load decks: %w", err)
	}
	if runner.UsingSample() {
		fmt.Printf("No decks found in %s, using the built-in sample deck.\n\n", runner.DataDir())
	}

	runner.Start(ctx)
	in := bufio.NewScanner(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	for i := 1; i <= count; i++ {
		ex, err := runner.Next()
		if err != nil {
			return fmt.Errorf("next exercise: %w", err)
		}
		printExercise(out, ex, i, count)

		fmt.Fprint(out, "\nYour answer: ")
		if !in.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			runner.Dismiss()
			break
		}
		text := strings.TrimSpace(in.Text())
		if text == "" {
			fmt.Fprintln(out, "(skipped)")
			fmt.Fprintln(out)
			runner.Dismiss()
			continue
		}
		if n, err := strconv.Atoi(text); err == nil {
			if opt, ok := ex.Choose(n); ok {
				text = opt
			}
		}

		res := runner.Answer(ctx, text)
		printResult(out, ex, res)
		runner.Dismiss()
	}

	sum := runner.Finish(ctx)
	if sum != nil {
		fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", sum.Correct, sum.Answered)
	}
	return nil
}

func printExercise(w io.Writer, ex *drill.Exercise, i, count int) {
	fmt.Fprintf(w, "── Exercise %d/%d ──\n", i, count)
	if ex.Task.PromptNative != "" {
		fmt.Fprintln(w, ex.Task.PromptNative)
	}
	blank := "___"
	if ex.JoinWithoutSpace {
		blank = "__"
	}
	fmt.Fprintln(w, ex.PromptPrefix+blank+ex.PromptSuffix)
	for j, opt := range ex.Options {
		fmt.Fprintf(w, "  %d) %s\n", j+1, opt)
	}
}

func printResult(w io.Writer, ex *drill.Exercise, res *drill.Result) {
	if res == nil {
		return
	}
	switch {
	case res.Correct:
		fmt.Fprintln(w, "\033[32m✓ Correct!\033[0m", res.Phrase.String())
	case res.Blocked:
		fmt.Fprintf(w, "\033[31m✗ %q is already part of the phrase.\033[0m\n", res.Answer)
		fmt.Fprintln(w, res.Phrase.String())
	default:
		fmt.Fprintln(w, "\033[31m✗ Wrong.\033[0m", res.Phrase.String())
	}
	if !res.Correct && len(res.Accepted) > 0 {
		fmt.Fprintf(w, "Accepted: %s\n", strings.Join(res.Accepted, ", "))
	}
	if ex.Task.Note != "" {
		fmt.Fprintf(w, "Note: %s\n", ex.Task.Note)
	}
	fmt.Fprintln(w)
}

