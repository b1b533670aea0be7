package quiz

import (
	"context"
	"errors"
	"time"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

// QuizSummary is the lightweight listing shape (no question payloads).
type QuizSummary struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	QuestionCount int       `json:"question_count"`
	Modified      time.Time `json:"modified"`
}

// ListOpts filters quiz listings.
type ListOpts struct {
	Q      string // substring match on name
	Limit  int
	Offset int
}

// Store is the quiz repository. Implementations must be safe for concurrent
// use; callers serialize mutations to any single quiz themselves.
type Store interface {
	PutQuiz(ctx context.Context, q *Quiz) error
	GetQuiz(ctx context.Context, id string) (*Quiz, error)
	ListQuizzes(ctx context.Context, opts ListOpts) ([]QuizSummary, error)
	// DeleteQuiz removes the quiz and clears the current-quiz pointer when it
	// pointed at the deleted quiz.
	DeleteQuiz(ctx context.Context, id string) error

	GetCurrentQuizID(ctx context.Context) (string, error) // "" when unset
	SetCurrentQuizID(ctx context.Context, id string) error
}
