package quiz

import (
	"context"
	"fmt"
	"time"
)

// ValidationFailedError carries the error-severity findings that blocked a
// question save.
type ValidationFailedError struct {
	Findings []Finding
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("question failed validation with %d finding(s)", len(e.Findings))
}

// Service owns quiz mutation. Every mutation stamps the modified timestamp;
// question saves are gated by the validation engine. Callers must serialize
// mutations to a single quiz (single-writer contract); independent quizzes
// may be mutated concurrently.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() Store { return s.store }

// CreateQuiz creates and persists an empty quiz.
func (s *Service) CreateQuiz(ctx context.Context, name string) (*Quiz, error) {
	q := NewQuiz(name)
	if err := s.store.PutQuiz(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// SaveQuiz persists q, stamping its modification time.
func (s *Service) SaveQuiz(ctx context.Context, q *Quiz) error {
	q.Modified = time.Now()
	return s.store.PutQuiz(ctx, q)
}

// DeleteQuiz removes the quiz; the store clears the current pointer if it
// pointed at the deleted quiz.
func (s *Service) DeleteQuiz(ctx context.Context, id string) error {
	return s.store.DeleteQuiz(ctx, id)
}

// SaveQuestion upserts a question (matched by ID) into the quiz. Questions
// with error-severity findings are rejected; the warnings, if any, are
// returned alongside a nil error.
func (s *Service) SaveQuestion(ctx context.Context, quizID string, question Question) ([]Finding, error) {
	findings := ValidateQuestion(question)
	if HasErrors(findings) {
		return findings, &ValidationFailedError{Findings: findings}
	}

	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return findings, err
	}

	question.Base().Touch()
	replaced := false
	for i, existing := range q.Questions {
		if existing.Base().ID == question.Base().ID {
			q.Questions[i] = question
			replaced = true
			break
		}
	}
	if !replaced {
		q.Questions = append(q.Questions, question)
	}
	return findings, s.SaveQuiz(ctx, q)
}

// AddQuestions appends pre-validated questions (e.g. from a CSV import) to
// the quiz in order.
func (s *Service) AddQuestions(ctx context.Context, quizID string, questions []Question) error {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	q.Questions = append(q.Questions, questions...)
	return s.SaveQuiz(ctx, q)
}

// DeleteQuestion removes a question by ID from its owning quiz.
func (s *Service) DeleteQuestion(ctx context.Context, quizID, questionID string) error {
	q, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	kept := q.Questions[:0]
	found := false
	for _, existing := range q.Questions {
		if existing.Base().ID == questionID {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	if !found {
		return ErrQuestionNotFound
	}
	q.Questions = kept
	return s.SaveQuiz(ctx, q)
}
