// Package grading computes per-question scores for preview/grading runs,
// independent of any storage format.
package grading

import (
	"errors"
	"strings"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// Result is the outcome of scoring one question response.
type Result struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
}

// Strategy scores a single question. The response shape depends on the
// question kind: answer id (string) for single MCQ, []string of ids for
// multi MCQ, bool for true/false, free text for short answer, and a
// subquestion-id to answer-text map for matching.
type Strategy interface {
	Grade(q quiz.Question, response interface{}) (Result, error)
}

// Grader routes a question to the strategy for its kind.
type Grader interface {
	Grade(q quiz.Question, response interface{}) (Result, error)
}

type defaultGrader struct {
	strategies map[quiz.QuestionType]Strategy
}

// NewGrader installs the built-in strategies for the four question kinds.
func NewGrader() Grader {
	return &defaultGrader{
		strategies: map[quiz.QuestionType]Strategy{
			quiz.TypeMCQ:         mcqStrategy{},
			quiz.TypeTrueFalse:   trueFalseStrategy{},
			quiz.TypeShortAnswer: shortAnswerStrategy{},
			quiz.TypeMatching:    matchingStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(q quiz.Question, response interface{}) (Result, error) {
	s, ok := g.strategies[q.Base().Type]
	if !ok {
		return Result{}, errors.New("no strategy for question type " + string(q.Base().Type))
	}
	return s.Grade(q, response)
}

type mcqStrategy struct{}

func (mcqStrategy) Grade(q quiz.Question, response interface{}) (Result, error) {
	m, ok := q.(*quiz.MCQQuestion)
	if !ok {
		return Result{}, errors.New("question is not multiple choice")
	}
	if m.Single {
		res := Result{MaxScore: 1}
		id, ok := asString(response)
		if !ok {
			return res, errors.New("response must be an answer id")
		}
		for _, a := range m.Answers {
			if a.ID == id && a.Fraction > 0 {
				res.Score = 1
			}
		}
		return res, nil
	}

	// Multi-select: +1 per correct pick, -0.5 per wrong pick, floored at 0.
	res := Result{MaxScore: float64(len(m.Answers))}
	ids, ok := asStringSlice(response)
	if !ok {
		return res, errors.New("response must be a list of answer ids")
	}
	selected := map[string]bool{}
	for _, id := range ids {
		selected[id] = true
	}
	score := 0.0
	for _, a := range m.Answers {
		if !selected[a.ID] {
			continue
		}
		if a.Fraction > 0 {
			score++
		} else {
			score -= 0.5
		}
	}
	if score < 0 {
		score = 0
	}
	res.Score = score
	return res, nil
}

type trueFalseStrategy struct{}

func (trueFalseStrategy) Grade(q quiz.Question, response interface{}) (Result, error) {
	tf, ok := q.(*quiz.TrueFalseQuestion)
	if !ok {
		return Result{}, errors.New("question is not true/false")
	}
	res := Result{MaxScore: 1}
	v, ok := response.(bool)
	if !ok {
		return res, errors.New("response must be a boolean")
	}
	if v == tf.CorrectAnswer {
		res.Score = 1
	}
	return res, nil
}

type shortAnswerStrategy struct{}

func (shortAnswerStrategy) Grade(q quiz.Question, response interface{}) (Result, error) {
	sa, ok := q.(*quiz.ShortAnswerQuestion)
	if !ok {
		return Result{}, errors.New("question is not short answer")
	}
	res := Result{MaxScore: 1}
	text, ok := asString(response)
	if !ok {
		return res, errors.New("response must be a string")
	}
	text = strings.TrimSpace(text)
	for _, a := range sa.Answers {
		candidate := strings.TrimSpace(a.Text)
		if sa.CaseSensitive {
			if candidate == text {
				res.Score = a.Fraction / 100
				return res, nil
			}
		} else if strings.EqualFold(candidate, text) {
			res.Score = a.Fraction / 100
			return res, nil
		}
	}
	return res, nil
}

type matchingStrategy struct{}

func (matchingStrategy) Grade(q quiz.Question, response interface{}) (Result, error) {
	m, ok := q.(*quiz.MatchingQuestion)
	if !ok {
		return Result{}, errors.New("question is not matching")
	}
	res := Result{MaxScore: 1}
	matches, ok := asStringMap(response)
	if !ok {
		return res, errors.New("response must be a map of subquestion id to answer text")
	}
	if len(m.Subquestions) == 0 {
		return res, nil
	}
	correct := 0
	for _, sq := range m.Subquestions {
		if matches[sq.ID] == sq.AnswerText {
			correct++
		}
	}
	res.Score = float64(correct) / float64(len(m.Subquestions))
	return res, nil
}

func asString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asStringSlice(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func asStringMap(v interface{}) (map[string]string, bool) {
	switch t := v.(type) {
	case map[string]string:
		return t, true
	case map[string]interface{}:
		out := make(map[string]string, len(t))
		for k, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[k] = s
		}
		return out, true
	}
	return nil, false
}
