// Package options builds the multiple-choice set shown for a task.
//
// Distractors are drawn from tasks sharing the same theme key (group, or
// type when the group is blank). Options are compared case-insensitively
// and never padded with placeholders.
package options

import (
	"math/rand/v2"
	"strings"

	"github.com/abhisek/langtrainer/internal/deck"
)

// DefaultCount is the number of choices shown when a task's own options are
// not enough.
const DefaultCount = 6

// Builder synthesizes option lists. The zero value is not usable; use
// NewBuilder.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder returns a Builder. A nil r selects a randomly seeded source.
func NewBuilder(r *rand.Rand) *Builder {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Builder{rng: r}
}

// Build returns up to target unique options for task.
//
// When the task already carries at least target options they are returned
// deduplicated in their original order. Otherwise the task's own options
// come first, distractors from the theme pool are appended in random order
// until target is reached, and the whole result is shuffled.
func (b *Builder) Build(task *deck.Task, corpus deck.Corpus, target int) []string {
	if task == nil {
		return nil
	}

	set := newFoldSet(max(target, len(task.Options)))
	for _, o := range task.Options {
		set.add(o)
	}

	if len(task.Options) >= target {
		return set.items
	}

	pool := themePool(task.ThemeKey(), corpus)
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, o := range pool {
		if len(set.items) >= target {
			break
		}
		set.add(o)
	}

	out := set.items
	b.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// themePool collects every non-empty option of the tasks sharing key.
func themePool(key string, corpus deck.Corpus) []string {
	if strings.TrimSpace(key) == "" {
		return nil
	}

	var pool []string
	corpus.Each(func(t *deck.Task) bool {
		if t.ThemeKey() != key {
			return true
		}
		for _, o := range t.Options {
			if strings.TrimSpace(o) != "" {
				pool = append(pool, o)
			}
		}
		return true
	})
	return pool
}

// foldSet keeps strings in insertion order, unique under case folding.
type foldSet struct {
	items []string
	seen  map[string]struct{}
}

func newFoldSet(capacity int) *foldSet {
	return &foldSet{
		items: make([]string, 0, capacity),
		seen:  make(map[string]struct{}, capacity),
	}
}

func (s *foldSet) add(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	key := strings.ToLower(v)
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, v)
	return true
}
