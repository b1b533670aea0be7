package quiz

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one validation result, tagged with the offending field.
// Error findings block persistence and export; warnings are advisory.
type Finding struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// HasErrors reports whether any finding has error severity.
func HasErrors(fs []Finding) bool {
	for _, f := range fs {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateQuestion checks the structural and numeric invariants of a question.
// It is pure and returns an empty slice for a fully valid question.
func ValidateQuestion(q Question) []Finding {
	var out []Finding
	b := q.Base()

	if strings.TrimSpace(b.Title) == "" {
		out = append(out, Finding{"title", "question title is required", SeverityError})
	}
	if strings.TrimSpace(b.Text) == "" {
		out = append(out, Finding{"text", "question text is required", SeverityError})
	}
	if b.DefaultGrade <= 0 {
		out = append(out, Finding{"defaultGrade", "default grade must be greater than 0", SeverityError})
	}
	if b.Penalty < 0 || b.Penalty > 100 {
		out = append(out, Finding{"penalty", "penalty must be between 0 and 100%", SeverityError})
	}

	switch v := q.(type) {
	case *MCQQuestion:
		out = append(out, validateMCQ(v)...)
	case *TrueFalseQuestion:
		// no structural invariants beyond the base
	case *ShortAnswerQuestion:
		out = append(out, validateShortAnswer(v)...)
	case *MatchingQuestion:
		out = append(out, validateMatching(v)...)
	}
	return out
}

func validateMCQ(q *MCQQuestion) []Finding {
	var out []Finding

	if len(q.Answers) < 2 {
		out = append(out, Finding{"answers", "a multiple choice question needs at least 2 answers", SeverityError})
	}
	if len(q.Answers) > 10 {
		out = append(out, Finding{"answers", "a multiple choice question should not have more than 10 answers", SeverityWarning})
	}

	total := 0.0
	for _, a := range q.Answers {
		total += a.Fraction
	}
	if q.Single && total != 100 {
		out = append(out, Finding{"answers", "for single choice the fractions must sum to exactly 100%", SeverityError})
	}
	if !q.Single && total > 100 {
		out = append(out, Finding{"answers", "for multiple choice the fractions must not sum to more than 100%", SeverityError})
	}

	out = append(out, validateAnswerList(q.Answers)...)
	return out
}

func validateShortAnswer(q *ShortAnswerQuestion) []Finding {
	var out []Finding

	if len(q.Answers) == 0 {
		out = append(out, Finding{"answers", "a short answer question needs at least one accepted answer", SeverityError})
	}
	if len(q.Answers) > 5 {
		out = append(out, Finding{"answers", "a short answer question should not have more than 5 accepted answers", SeverityWarning})
	}

	out = append(out, validateAnswerList(q.Answers)...)
	return out
}

func validateAnswerList(answers []Answer) []Finding {
	var out []Finding
	for i, a := range answers {
		if strings.TrimSpace(a.Text) == "" {
			out = append(out, Finding{
				Field:    fmt.Sprintf("answers[%d].text", i),
				Message:  fmt.Sprintf("answer %d needs a text", i+1),
				Severity: SeverityError,
			})
		}
		if a.Fraction < 0 || a.Fraction > 100 {
			out = append(out, Finding{
				Field:    fmt.Sprintf("answers[%d].fraction", i),
				Message:  fmt.Sprintf("answer %d fraction must be between 0 and 100%%", i+1),
				Severity: SeverityError,
			})
		}
	}
	return out
}

func validateMatching(q *MatchingQuestion) []Finding {
	var out []Finding

	if len(q.Subquestions) < 2 {
		out = append(out, Finding{"subquestions", "a matching question needs at least 2 pairs", SeverityError})
	}
	for i, sq := range q.Subquestions {
		if strings.TrimSpace(sq.Text) == "" {
			out = append(out, Finding{
				Field:    fmt.Sprintf("subquestions[%d].text", i),
				Message:  fmt.Sprintf("pair %d needs a left-hand text", i+1),
				Severity: SeverityError,
			})
		}
		if strings.TrimSpace(sq.AnswerText) == "" {
			out = append(out, Finding{
				Field:    fmt.Sprintf("subquestions[%d].answerText", i),
				Message:  fmt.Sprintf("pair %d needs a right-hand answer", i+1),
				Severity: SeverityError,
			})
		}
	}
	return out
}
