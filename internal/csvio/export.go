package csvio

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// Export renders one CSV row per question under the fixed header. Unused
// answer slots stay blank; answers beyond the fifth slot are dropped (a
// documented limitation of the fixed-width format).
func Export(questions []quiz.Question) (string, error) {
	headers := Headers()
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(headers); err != nil {
		return "", err
	}
	for _, q := range questions {
		row := questionToRow(q)
		record := make([]string, len(headers))
		for i, h := range headers {
			record[i] = row[h]
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

// ExportQuiz renders the quiz's questions.
func ExportQuiz(q *quiz.Quiz) (string, error) {
	return Export(q.Questions)
}

func questionToRow(q quiz.Question) map[string]string {
	b := q.Base()
	row := map[string]string{
		colType:            string(b.Type),
		colTitle:           b.Title,
		colText:            b.Text,
		colGrade:           formatNumber(b.DefaultGrade),
		colPenalty:         formatNumber(b.Penalty),
		colGeneralFeedback: b.GeneralFeedback,
		colTags:            strings.Join(b.Tags, ","),
		colOptions:         "",
	}
	for i := 1; i <= answerSlots; i++ {
		row[answerCol(i)] = ""
		row[fractionCol(i)] = ""
		row[feedbackCol(i)] = ""
	}

	switch v := q.(type) {
	case *quiz.MCQQuestion:
		fillAnswerSlots(row, v.Answers)
		row[colOptions] = fmt.Sprintf("single=%t;shuffle=%t", v.Single, v.ShuffleAnswers)
	case *quiz.TrueFalseQuestion:
		row[answerCol(1)] = "Vrai"
		row[fractionCol(1)] = boolFraction(v.CorrectAnswer)
		row[feedbackCol(1)] = v.TrueFeedback
		row[answerCol(2)] = "Faux"
		row[fractionCol(2)] = boolFraction(!v.CorrectAnswer)
		row[feedbackCol(2)] = v.FalseFeedback
	case *quiz.ShortAnswerQuestion:
		fillAnswerSlots(row, v.Answers)
		row[colOptions] = fmt.Sprintf("caseSensitive=%t", v.CaseSensitive)
	case *quiz.MatchingQuestion:
		for i, sq := range v.Subquestions {
			if i >= answerSlots {
				break
			}
			row[answerCol(i+1)] = sq.Text + ":" + sq.AnswerText
			row[fractionCol(i+1)] = "100"
		}
		row[colOptions] = fmt.Sprintf("shuffle=%t", v.ShuffleAnswers)
	}
	return row
}

func fillAnswerSlots(row map[string]string, answers []quiz.Answer) {
	for i, a := range answers {
		if i >= answerSlots {
			break
		}
		row[answerCol(i+1)] = a.Text
		row[fractionCol(i+1)] = formatNumber(a.Fraction)
		row[feedbackCol(i+1)] = a.Feedback
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolFraction(correct bool) string {
	if correct {
		return "100"
	}
	return "0"
}
