package answer

import (
	"testing"

	"github.com/abhisek/langtrainer/internal/deck"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  ÁÉÍÓÚñ   test ", "aeioun test"},
		{"", ""},
		{"   \t\n ", ""},
		{"Vás", "vas"},
		{"¿Qué   tal?", "¿que tal?"},
		{"a  b", "a b"},
		{"Ü", "u"},
		{"é", "e"}, // already decomposed input
		{"MAÑANA por\tla\nmañana", "manana por la manana"},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"  ÁÉÍÓÚñ   test ",
		"Ça  va",
		"Straße",
		"İstanbul",
		"é́",
		"  multiple\t\twhite   space ",
		"日本語 テキスト",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	task := &deck.Task{AcceptableAnswers: []string{"vas"}}

	tests := []struct {
		input string
		want  bool
	}{
		{"  Vás ", true},
		{"vas", true},
		{"VAS", true},
		{"vaas", false},
		{"va", false},
		{"", false},
	}

	for _, tc := range tests {
		got := IsCorrect(task, tc.input)
		if got != tc.want {
			t.Errorf("IsCorrect(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestIsCorrect_MultipleAccepted(t *testing.T) {
	task := &deck.Task{AcceptableAnswers: []string{"a él", "a ella"}}

	if !IsCorrect(task, "A  Ella") {
		t.Error("expected second accepted answer to match")
	}
	if !IsCorrect(task, "a el") {
		t.Error("expected accent-free answer to match")
	}
}

func TestIsCorrect_NoAcceptedAnswers(t *testing.T) {
	task := &deck.Task{Options: []string{"vas"}}

	for _, input := range []string{"vas", "", "anything"} {
		if IsCorrect(task, input) {
			t.Errorf("IsCorrect(%q) = true for task without accepted answers", input)
		}
	}
	if IsCorrect(nil, "vas") {
		t.Error("IsCorrect(nil task) = true")
	}
}
