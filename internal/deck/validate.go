package deck

import (
	"fmt"
	"strings"
)

// DefectKind classifies a content problem found in a corpus.
type DefectKind string

const (
	DefectMissingID     DefectKind = "missing-id"
	DefectDuplicateID   DefectKind = "duplicate-id"
	DefectNoBlank       DefectKind = "no-blank"
	DefectMultipleBlank DefectKind = "multiple-blanks"
	DefectNoAnswers     DefectKind = "no-acceptable-answers"
	DefectEmptyDeck     DefectKind = "empty-deck"
)

// Defect is a data problem the engine tolerates but an author should fix.
type Defect struct {
	DeckID string
	TaskID string
	Kind   DefectKind
}

func (d Defect) String() string {
	if d.TaskID == "" {
		return fmt.Sprintf("%s: %s", d.DeckID, d.Kind)
	}
	return fmt.Sprintf("%s/%s: %s", d.DeckID, d.TaskID, d.Kind)
}

// Validate reports content defects across the corpus. Task ids must be unique
// corpus-wide for recency tracking to work, so duplicates are reported even
// when they live in different decks.
func Validate(c Corpus) []Defect {
	var defects []Defect
	seen := make(map[string]string)

	for _, d := range c {
		if d == nil {
			continue
		}
		if len(d.Tasks) == 0 {
			defects = append(defects, Defect{DeckID: d.ID, Kind: DefectEmptyDeck})
		}
		for i := range d.Tasks {
			t := &d.Tasks[i]
			if strings.TrimSpace(t.ID) == "" {
				defects = append(defects, Defect{DeckID: d.ID, TaskID: fmt.Sprintf("#%d", i), Kind: DefectMissingID})
			} else if _, dup := seen[t.ID]; dup {
				defects = append(defects, Defect{DeckID: d.ID, TaskID: t.ID, Kind: DefectDuplicateID})
			} else {
				seen[t.ID] = d.ID
			}

			switch strings.Count(t.PromptTemplate, BlankMarker) {
			case 0:
				defects = append(defects, Defect{DeckID: d.ID, TaskID: t.ID, Kind: DefectNoBlank})
			case 1:
			default:
				defects = append(defects, Defect{DeckID: d.ID, TaskID: t.ID, Kind: DefectMultipleBlank})
			}

			if len(t.AcceptableAnswers) == 0 {
				defects = append(defects, Defect{DeckID: d.ID, TaskID: t.ID, Kind: DefectNoAnswers})
			}
		}
	}
	return defects
}
