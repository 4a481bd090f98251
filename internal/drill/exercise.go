package drill

import (
	"strings"
	"time"
	"unicode"

	"github.com/abhisek/langtrainer/internal/affix"
	"github.com/abhisek/langtrainer/internal/answer"
	"github.com/abhisek/langtrainer/internal/deck"
)

// Exercise is a task prepared for display.
type Exercise struct {
	Task   *deck.Task
	DeckID string

	// PromptPrefix and PromptSuffix surround the blank in the template.
	PromptPrefix string
	PromptSuffix string

	// Options are the visible choices. Empty for free-text tasks.
	Options []string

	// Blocked holds choices hidden because they repeat a fused clitic.
	Blocked affix.BlockedSet

	// JoinWithoutSpace is set when the answer attaches to the preceding
	// stem. Choices are then rendered left-aligned.
	JoinWithoutSpace bool

	ShownAt time.Time
}

// Phrase is the template with an answer spliced in at the blank.
type Phrase struct {
	Prefix string
	Insert string
	Suffix string
}

// String renders the phrase as plain text.
func (p Phrase) String() string {
	return p.Prefix + p.Insert + p.Suffix
}

// Result is the outcome of submitting an answer.
type Result struct {
	Answer  string
	Correct bool

	// Blocked is set when the answer was one of the hidden choices.
	Blocked bool

	// Accepted lists the answers shown on a wrong submission.
	Accepted []string

	Phrase  Phrase
	Elapsed time.Duration
}

// Present prepares task for display. The option list is built from the
// task's theme pool and filtered by the affix suppressor.
func (e *Engine) Present(task *deck.Task, corpus deck.Corpus) *Exercise {
	ex := &Exercise{
		Task:    task,
		ShownAt: time.Now(),
	}
	if d := corpus.DeckOf(task.ID); d != nil {
		ex.DeckID = d.ID
	}

	built := e.builder.Build(task, corpus, e.optionCount)

	// Distractors from the pool can collide with the fused clitic as well,
	// so the blocked set covers every option that will be offered.
	view := *task
	view.Options = append(append([]string(nil), task.Options...), built...)
	ex.Blocked = e.suppressor.ComputeBlocked(&view)
	ex.Options = affix.VisibleOptions(built, ex.Blocked)
	ex.JoinWithoutSpace = e.suppressor.JoinWithoutSpace(task)

	prefix, suffix, ok := affix.SplitTemplate(task.PromptTemplate)
	if ok {
		prefix = affix.TrimDuplicateLeadingToken(prefix, task.Options)
		if ex.JoinWithoutSpace {
			prefix = strings.TrimRightFunc(prefix, unicode.IsSpace)
		}
	}
	ex.PromptPrefix = prefix
	ex.PromptSuffix = suffix
	return ex
}

// Choose returns the option at the 1-based position n.
func (ex *Exercise) Choose(n int) (string, bool) {
	if n < 1 || n > len(ex.Options) {
		return "", false
	}
	return ex.Options[n-1], true
}

// Submit grades userAnswer. A hidden choice is always wrong.
func (ex *Exercise) Submit(userAnswer string) Result {
	res := Result{
		Answer:  userAnswer,
		Elapsed: time.Since(ex.ShownAt),
	}

	if ex.Blocked.Contains(userAnswer) {
		res.Blocked = true
	} else {
		res.Correct = answer.IsCorrect(ex.Task, userAnswer)
	}

	if !res.Correct {
		res.Accepted = affix.AllowedAnswers(ex.Task, ex.Blocked)
	}
	res.Phrase = ex.phrase(res.Correct, userAnswer)
	return res
}

// phrase splices the user's answer when correct, otherwise the first
// accepted answer.
func (ex *Exercise) phrase(correct bool, userAnswer string) Phrase {
	insert := userAnswer
	if !correct && len(ex.Task.AcceptableAnswers) > 0 {
		insert = ex.Task.AcceptableAnswers[0]
	}

	prefix, suffix, ok := affix.SplitTemplate(ex.Task.PromptTemplate)
	if !ok {
		return Phrase{Prefix: prefix, Insert: insert}
	}

	prefix = affix.TrimDuplicateLeadingToken(prefix, []string{insert})
	if ex.JoinWithoutSpace {
		prefix = strings.TrimRightFunc(prefix, unicode.IsSpace)
	}
	return Phrase{Prefix: prefix, Insert: insert, Suffix: suffix}
}
