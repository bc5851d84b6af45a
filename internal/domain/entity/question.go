package entity

import (
	"time"

	"github.com/google/uuid"
)

// Question is a quiz question belonging to a category. Questions are
// immutable after creation; there is no update or delete operation.
type Question struct {
	ID        uuid.UUID `json:"id"`        // The unique identifier for the question.
	Category  string    `json:"category"`  // The category used for filtered random sampling.
	Prompt    string    `json:"question"`  // The question text shown to players.
	Answers   []Answer  `json:"answers"`   // The ordered list of candidate answers.
	CreatedAt time.Time `json:"createdAt"`
}

// Answer is one candidate answer of a question.
type Answer struct {
	Text      string `json:"answer"`     // The answer text.
	IsCorrect bool   `json:"trueAnswer"` // Whether this answer is a correct one.
}

// HasCorrectAnswer reports whether at least one answer is marked correct.
// Creation enforces this invariant.
func (q *Question) HasCorrectAnswer() bool {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return true
		}
	}

	return false
}
