package answer

import "github.com/abhisek/langtrainer/internal/deck"

// IsCorrect reports whether userAnswer matches one of the task's accepted
// answers after normalization. A task without accepted answers can never be
// satisfied.
func IsCorrect(task *deck.Task, userAnswer string) bool {
	if task == nil || len(task.AcceptableAnswers) == 0 {
		return false
	}

	got := Normalize(userAnswer)
	for _, a := range task.AcceptableAnswers {
		if Normalize(a) == got {
			return true
		}
	}
	return false
}

