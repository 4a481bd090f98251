// Package affix hides answer choices that would duplicate a pronoun clitic
// already fused onto the word before the blank ("Dáselo ___" never offers
// "lo"), and decides how an answer is spliced into its template.
package affix

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/langtrainer/internal/deck"
)

// DefaultClitics is the Spanish pronoun clitic vocabulary.
var DefaultClitics = []string{"me", "te", "se", "nos", "os", "lo", "la", "los", "las", "le", "les"}

// DefaultEndingMarker marks task types that drill verb endings.
const DefaultEndingMarker = "verbs.endings"

// punctuation stripped from both ends of a token.
const punctuation = `,.;:!?¿¡"'`

// maxEndingLen is the longest option still treated as a suffix choice.
const maxEndingLen = 4

// Option configures a Suppressor.
type Option func(*Suppressor)

// WithClitics replaces the clitic vocabulary. Blank entries are ignored.
func WithClitics(clitics []string) Option {
	return func(s *Suppressor) {
		s.clitics = make(map[string]struct{}, len(clitics))
		for _, c := range clitics {
			c = strings.ToLower(CleanToken(c))
			if c != "" {
				s.clitics[c] = struct{}{}
			}
		}
	}
}

// WithEndingMarker sets the substring of a task type that forces
// join-without-space. An empty marker disables the type check.
func WithEndingMarker(marker string) Option {
	return func(s *Suppressor) { s.endingMarker = strings.ToLower(strings.TrimSpace(marker)) }
}

// Suppressor computes blocked options for a target language.
type Suppressor struct {
	clitics      map[string]struct{}
	endingMarker string
}

// New returns a Suppressor configured for Spanish unless overridden.
func New(opts ...Option) *Suppressor {
	s := &Suppressor{}
	WithClitics(DefaultClitics)(s)
	WithEndingMarker(DefaultEndingMarker)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsClitic reports whether token, once cleaned, belongs to the vocabulary.
func (s *Suppressor) IsClitic(token string) bool {
	_, ok := s.clitics[strings.ToLower(CleanToken(token))]
	return ok
}

// ComputeBlocked returns the options of task that repeat a clitic already
// attached to the token before the blank. Both the raw option and its
// cleaned form are recorded.
func (s *Suppressor) ComputeBlocked(task *deck.Task) BlockedSet {
	blocked := BlockedSet{}
	if task == nil {
		return blocked
	}

	prefix, _, ok := SplitTemplate(task.PromptTemplate)
	if !ok {
		return blocked
	}

	token := CleanToken(LastToken(prefix))
	if token == "" {
		return blocked
	}
	lowerToken := strings.ToLower(token)
	tokenLen := utf8.RuneCountInString(token)

	for _, opt := range task.Options {
		candidate := CleanToken(opt)
		if candidate == "" || !s.IsClitic(candidate) {
			continue
		}
		if tokenLen > utf8.RuneCountInString(candidate) &&
			strings.HasSuffix(lowerToken, strings.ToLower(candidate)) {
			blocked.add(opt)
			blocked.add(candidate)
		}
	}
	return blocked
}

// JoinWithoutSpace reports whether the answer attaches directly to the
// preceding stem. It holds for ending drills by type, or when at least two
// options look like short alphabetic endings.
func (s *Suppressor) JoinWithoutSpace(task *deck.Task) bool {
	if task == nil {
		return false
	}
	if s.endingMarker != "" && strings.Contains(strings.ToLower(task.Type), s.endingMarker) {
		return true
	}

	short := 0
	for _, opt := range task.Options {
		t := CleanToken(opt)
		if n := utf8.RuneCountInString(t); n >= 1 && n <= maxEndingLen && isAlpha(t) {
			short++
		}
	}
	return short >= 2
}

// BlockedSet is a case-insensitive set of option strings.
type BlockedSet map[string]struct{}

func (b BlockedSet) add(v string) {
	b[strings.ToLower(v)] = struct{}{}
}

// Contains reports whether v is blocked, ignoring case and surrounding
// whitespace.
func (b BlockedSet) Contains(v string) bool {
	if len(b) == 0 {
		return false
	}
	_, ok := b[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// VisibleOptions returns options without the blocked ones, in order.
func VisibleOptions(options []string, blocked BlockedSet) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		if !blocked.Contains(o) {
			out = append(out, o)
		}
	}
	return out
}

// AllowedAnswers returns the accepted answers that are not blocked. If every
// accepted answer is blocked the full list is returned instead.
func AllowedAnswers(task *deck.Task, blocked BlockedSet) []string {
	if task == nil {
		return nil
	}
	out := VisibleOptions(task.AcceptableAnswers, blocked)
	if len(out) == 0 {
		return append([]string(nil), task.AcceptableAnswers...)
	}
	return out
}

// SplitTemplate returns the text before and after the first blank marker.
// Without a marker the whole template is the prefix.
func SplitTemplate(template string) (prefix, suffix string, ok bool) {
	before, after, found := strings.Cut(template, deck.BlankMarker)
	if !found {
		return template, "", false
	}
	return before, after, true
}

// TrimDuplicateLeadingToken drops the last token of prefix when it equals
// one of candidates (case-insensitive, punctuation ignored), so an answer
// spliced in at the blank is not shown twice in a row. A prefix that is
// only that token becomes empty.
func TrimDuplicateLeadingToken(prefix string, candidates []string) string {
	if strings.TrimSpace(prefix) == "" {
		return prefix
	}

	trimmed := strings.TrimRightFunc(prefix, unicode.IsSpace)
	cut := 0
	if i := strings.LastIndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		_, size := utf8.DecodeRuneInString(trimmed[i:])
		cut = i + size
	}

	token := CleanToken(trimmed[cut:])
	if token == "" {
		return prefix
	}
	for _, c := range candidates {
		candidate := CleanToken(c)
		if candidate != "" && strings.EqualFold(token, candidate) {
			return prefix[:cut]
		}
	}
	return prefix
}

// LastToken returns the run of non-whitespace characters at the end of s,
// ignoring trailing whitespace.
func LastToken(s string) string {
	trimmed := strings.TrimRightFunc(s, unicode.IsSpace)
	i := strings.LastIndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return trimmed
	}
	_, size := utf8.DecodeRuneInString(trimmed[i:])
	return trimmed[i+size:]
}

// CleanToken trims whitespace and surrounding punctuation.
func CleanToken(s string) string {
	return strings.Trim(strings.TrimSpace(s), punctuation)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
