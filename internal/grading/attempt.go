package grading

import (
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// QuestionScore pairs one question with its scored result.
type QuestionScore struct {
	QuestionID string `json:"question_id"`
	Result
	Answered bool `json:"answered"`
}

// AttemptResult aggregates a whole preview attempt.
type AttemptResult struct {
	Questions  []QuestionScore `json:"questions"`
	Score      float64         `json:"score"`
	MaxScore   float64         `json:"maxScore"`
	Percentage int             `json:"percentage"`
}

// GradeAttempt scores every question of the quiz against the submitted
// responses (keyed by question id). Unanswered questions contribute zero
// score but still count toward the maximum.
func GradeAttempt(g Grader, q *quiz.Quiz, responses map[string]interface{}) AttemptResult {
	out := AttemptResult{Questions: []QuestionScore{}}
	for _, question := range q.Questions {
		qs := QuestionScore{QuestionID: question.Base().ID}
		resp, answered := responses[question.Base().ID]
		if answered {
			res, err := g.Grade(question, resp)
			qs.Result = res
			qs.Answered = err == nil
		} else {
			// still need the max score of an unanswered question
			qs.Result.MaxScore = maxScoreOf(question)
		}
		out.Questions = append(out.Questions, qs)
		out.Score += qs.Score
		out.MaxScore += qs.MaxScore
	}
	if out.MaxScore > 0 {
		out.Percentage = int(out.Score/out.MaxScore*100 + 0.5)
	}
	return out
}

func maxScoreOf(q quiz.Question) float64 {
	if m, ok := q.(*quiz.MCQQuestion); ok && !m.Single {
		return float64(len(m.Answers))
	}
	return 1
}
