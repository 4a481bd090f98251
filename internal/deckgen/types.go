package deckgen

import "github.com/abhisek/langtrainer/internal/deck"

// Request describes the deck to author.
type Request struct {
	// DeckID names the new deck and prefixes its task ids.
	DeckID string
	Title  string

	// Topic is a free-form description of the grammar point, e.g.
	// "indirect object clitics with imperatives".
	Topic string

	NativeLanguage string
	TargetLanguage string

	// Count is the number of tasks to ask for.
	Count int

	// Group and Type, when set, are forced onto every generated task so
	// the new deck shares a distractor pool with existing ones.
	Group string
	Type  string

	// AvoidPrompts lists templates already present in the corpus.
	AvoidPrompts []string
}

// Result is a generated deck plus the tasks that were dropped.
type Result struct {
	Deck     *deck.Deck
	Rejected []*ValidationError
}
