package deck

import "testing"

func TestValidate(t *testing.T) {
	corpus := Corpus{
		{ID: "d1", Tasks: []Task{
			{ID: "ok", PromptTemplate: "Yo ___", AcceptableAnswers: []string{"voy"}},
			{ID: "noblank", PromptTemplate: "Yo voy", AcceptableAnswers: []string{"voy"}},
			{ID: "twoblanks", PromptTemplate: "___ y ___", AcceptableAnswers: []string{"x"}},
			{ID: "noanswers", PromptTemplate: "___"},
			{ID: "", PromptTemplate: "___", AcceptableAnswers: []string{"x"}},
		}},
		{ID: "d2", Tasks: []Task{
			{ID: "ok", PromptTemplate: "___", AcceptableAnswers: []string{"x"}},
		}},
		{ID: "empty"},
	}

	got := Validate(corpus)
	want := []Defect{
		{DeckID: "d1", TaskID: "noblank", Kind: DefectNoBlank},
		{DeckID: "d1", TaskID: "twoblanks", Kind: DefectMultipleBlank},
		{DeckID: "d1", TaskID: "noanswers", Kind: DefectNoAnswers},
		{DeckID: "d1", TaskID: "#4", Kind: DefectMissingID},
		{DeckID: "d2", TaskID: "ok", Kind: DefectDuplicateID},
		{DeckID: "empty", Kind: DefectEmptyDeck},
	}

	if len(got) != len(want) {
		t.Fatalf("Validate() returned %d defects, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("defect[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDefectString(t *testing.T) {
	if got := (Defect{DeckID: "d", TaskID: "t", Kind: DefectNoBlank}).String(); got != "d/t: no-blank" {
		t.Errorf("String() = %q", got)
	}
	if got := (Defect{DeckID: "d", Kind: DefectEmptyDeck}).String(); got != "d: empty-deck" {
		t.Errorf("String() = %q", got)
	}
}
