package affix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/langtrainer/internal/deck"
)

func TestComputeBlocked(t *testing.T) {
	s := New()

	tests := []struct {
		name     string
		template string
		options  []string
		blocked  []string
		allowed  []string
	}{
		{
			name:     "fused clitic",
			template: "Dáselo ___ ahora.",
			options:  []string{"lo", "le", "a él", "se"},
			blocked:  []string{"lo", "LO"},
			allowed:  []string{"le", "a él", "se"},
		},
		{
			name:     "punctuation around token and option",
			template: "¡Dímelo, ___!",
			options:  []string{"lo.", "me", "te"},
			blocked:  []string{"lo.", "lo"},
			allowed:  []string{"me", "te"},
		},
		{
			name:     "token equal to option is not longer",
			template: "Lo ___ veo.",
			options:  []string{"lo", "la"},
			allowed:  []string{"lo", "la"},
		},
		{
			name:     "non clitic suffix",
			template: "Hablo ___ bien.",
			options:  []string{"o", "blo"},
			allowed:  []string{"o", "blo"},
		},
		{
			name:     "no blank",
			template: "Dáselo ahora.",
			options:  []string{"lo"},
			allowed:  []string{"lo"},
		},
		{
			name:     "blank at start",
			template: "___ llamo Ana.",
			options:  []string{"me", "te"},
			allowed:  []string{"me", "te"},
		},
		{
			name:     "case insensitive suffix",
			template: "PONTELA ___",
			options:  []string{"la", "los"},
			blocked:  []string{"la"},
			allowed:  []string{"los"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			task := &deck.Task{PromptTemplate: tc.template, Options: tc.options}
			got := s.ComputeBlocked(task)

			for _, b := range tc.blocked {
				assert.True(t, got.Contains(b), "expected %q blocked", b)
			}
			assert.Equal(t, tc.allowed, VisibleOptions(tc.options, got))
		})
	}
}

func TestComputeBlocked_CustomClitics(t *testing.T) {
	s := New(WithClitics([]string{"ci", " ne "}))
	task := &deck.Task{PromptTemplate: "Andiamoci ___", Options: []string{"ci", "ne", "lo"}}

	got := s.ComputeBlocked(task)
	assert.True(t, got.Contains("ci"))
	assert.False(t, got.Contains("lo"))
	assert.True(t, s.IsClitic("ne"))
	assert.False(t, s.IsClitic("lo"))
}

func TestComputeBlocked_NilTask(t *testing.T) {
	assert.Empty(t, New().ComputeBlocked(nil))
}

func TestAllowedAnswers(t *testing.T) {
	s := New()

	task := &deck.Task{
		PromptTemplate:    "Dáselo ___",
		Options:           []string{"lo", "le"},
		AcceptableAnswers: []string{"lo", "le"},
	}
	assert.Equal(t, []string{"le"}, AllowedAnswers(task, s.ComputeBlocked(task)))

	onlyBlocked := &deck.Task{
		PromptTemplate:    "Dáselo ___",
		Options:           []string{"lo"},
		AcceptableAnswers: []string{"lo"},
	}
	assert.Equal(t, []string{"lo"}, AllowedAnswers(onlyBlocked, s.ComputeBlocked(onlyBlocked)))
}

func TestTrimDuplicateLeadingToken(t *testing.T) {
	tests := []struct {
		prefix     string
		candidates []string
		want       string
	}{
		{"Yo voy ", []string{"voy"}, "Yo "},
		{"Yo voy", []string{"Voy"}, "Yo "},
		{"Yo voy, ", []string{"voy"}, "Yo "},
		{"Yo voy ", []string{"vas"}, "Yo voy "},
		{"voy ", []string{"voy"}, ""},
		{"voy ", []string{"vas", "VOY!"}, ""},
		{"   ", []string{"voy"}, "   "},
		{"", []string{"voy"}, ""},
		{"Yo ¿ ", []string{"voy"}, "Yo ¿ "},
		{"Yo voy ", []string{"", "  "}, "Yo voy "},
	}

	for _, tc := range tests {
		got := TrimDuplicateLeadingToken(tc.prefix, tc.candidates)
		if got != tc.want {
			t.Errorf("TrimDuplicateLeadingToken(%q, %q) = %q, want %q", tc.prefix, tc.candidates, got, tc.want)
		}
	}
}

func TestJoinWithoutSpace(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		task *deck.Task
		want bool
	}{
		{"ending type", &deck.Task{Type: "verbs.endings.present"}, true},
		{"ending type case", &deck.Task{Type: "Verbs.Endings"}, true},
		{"short alpha options", &deck.Task{Options: []string{"o", "as", "amos"}}, true},
		{"one short option", &deck.Task{Options: []string{"o", "hablamos"}}, false},
		{"digits are not endings", &deck.Task{Options: []string{"12", "3"}}, false},
		{"full words", &deck.Task{Options: []string{"hablo", "hablas"}}, false},
		{"punctuation cleaned", &deck.Task{Options: []string{"-o", "as."}}, false},
		{"nil", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.JoinWithoutSpace(tc.task))
		})
	}
}

func TestJoinWithoutSpace_MarkerDisabled(t *testing.T) {
	s := New(WithEndingMarker(""))
	assert.False(t, s.JoinWithoutSpace(&deck.Task{Type: "verbs.endings"}))
}

func TestSplitTemplate(t *testing.T) {
	prefix, suffix, ok := SplitTemplate("Yo ___ a casa.")
	assert.True(t, ok)
	assert.Equal(t, "Yo ", prefix)
	assert.Equal(t, " a casa.", suffix)

	prefix, suffix, ok = SplitTemplate("Sin hueco")
	assert.False(t, ok)
	assert.Equal(t, "Sin hueco", prefix)
	assert.Empty(t, suffix)
}

func TestLastToken(t *testing.T) {
	assert.Equal(t, "dáselo", LastToken("Ahora dáselo  "))
	assert.Equal(t, "solo", LastToken("solo"))
	assert.Empty(t, LastToken("  "))
}
