// Package csvio converts between the quiz document model and the tabular
// CSV interchange format: one row per question, a fixed French header set,
// five answer slots, and a key=value mini-language for type-specific options.
package csvio

import (
	"fmt"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// answerSlots is the fixed number of answer columns. Questions with more
// answers are truncated on export.
const answerSlots = 5

const (
	colType            = "Type"
	colTitle           = "Titre"
	colText            = "Question"
	colGrade           = "Note"
	colPenalty         = "Pénalité"
	colGeneralFeedback = "Feedback général"
	colTags            = "Tags"
	colOptions         = "Options spéciales"
)

// Headers returns the column set, in order. The template and both codec
// directions share this single definition.
func Headers() []string {
	hs := []string{colType, colTitle, colText, colGrade, colPenalty, colGeneralFeedback, colTags}
	for i := 1; i <= answerSlots; i++ {
		hs = append(hs,
			fmt.Sprintf("Réponse %d", i),
			fmt.Sprintf("Fraction %d", i),
			fmt.Sprintf("Feedback %d", i),
		)
	}
	return append(hs, colOptions)
}

func answerCol(i int) string   { return fmt.Sprintf("Réponse %d", i) }
func fractionCol(i int) string { return fmt.Sprintf("Fraction %d", i) }
func feedbackCol(i int) string { return fmt.Sprintf("Feedback %d", i) }

// ImportResult is the outcome of a CSV import. Success is true only when no
// error-severity finding occurred on any row; questions parsed from clean
// rows are returned either way.
type ImportResult struct {
	Success   bool            `json:"success"`
	Questions []quiz.Question `json:"questions"`
	Errors    []quiz.Finding  `json:"errors"`
	Warnings  []quiz.Finding  `json:"warnings"`
}
