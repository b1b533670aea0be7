package quiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID returns an opaque unique identifier for quizzes, questions and answers.
func NewID() string { return uuid.NewString() }

// NewEmptyQuestion builds a question of the given kind with the defaults an
// editor starts from. The result is not yet valid (empty title and text)
// until the author fills it in.
func NewEmptyQuestion(t QuestionType) (Question, error) {
	now := time.Now()
	base := QuestionBase{
		ID:           NewID(),
		Type:         t,
		DefaultGrade: 1,
		Penalty:      0,
		Tags:         []string{},
		Created:      now,
		Modified:     now,
	}
	switch t {
	case TypeMCQ:
		return &MCQQuestion{
			QuestionBase: base,
			Single:       true,
			Answers: []Answer{
				{ID: NewID(), Fraction: 100},
				{ID: NewID(), Fraction: 0},
			},
		}, nil
	case TypeTrueFalse:
		return &TrueFalseQuestion{
			QuestionBase:  base,
			CorrectAnswer: true,
		}, nil
	case TypeShortAnswer:
		return &ShortAnswerQuestion{
			QuestionBase: base,
			Answers: []Answer{
				{ID: NewID(), Fraction: 100},
			},
		}, nil
	case TypeMatching:
		return &MatchingQuestion{
			QuestionBase: base,
			Subquestions: []MatchPair{
				{ID: NewID()},
				{ID: NewID()},
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", t)
	}
}

// NewQuiz builds an empty quiz with default settings.
func NewQuiz(name string) *Quiz {
	now := time.Now()
	return &Quiz{
		ID:        NewID(),
		Name:      name,
		Category:  "Default",
		Questions: []Question{},
		Created:   now,
		Modified:  now,
		Settings: QuizSettings{
			GradingMethod:      GradeHighest,
			ShowFeedback:       true,
			ShowCorrectAnswers: true,
		},
	}
}
