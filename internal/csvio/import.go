package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// Import parses CSV content into questions. Rows are processed
// independently: a malformed or invalid row is reported against its
// 1-indexed line number (the header is line 1) and dropped without aborting
// the rest of the file. Imported questions get freshly generated IDs.
func Import(content string) ImportResult {
	result := ImportResult{
		Questions: []quiz.Question{},
		Errors:    []quiz.Finding{},
		Warnings:  []quiz.Finding{},
	}

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as empty

	header, err := r.Read()
	if err != nil {
		result.Errors = append(result.Errors, quiz.Finding{
			Field:    "csv",
			Message:  "unable to read CSV header: " + err.Error(),
			Severity: quiz.SeverityError,
		})
		return result
	}
	colIndex := map[string]int{}
	for i, h := range header {
		colIndex[strings.TrimSpace(h)] = i
	}

	rowNumber := 1
	for {
		record, err := r.Read()
		rowNumber++
		if err == io.EOF {
			break
		}
		if err != nil {
			// Parser-level failure for this line; report and keep going.
			result.Errors = append(result.Errors, quiz.Finding{
				Field:    fmt.Sprintf("row %d", rowNumber),
				Message:  err.Error(),
				Severity: quiz.SeverityError,
			})
			continue
		}
		if isBlank(record) {
			continue
		}

		row := rowReader{index: colIndex, record: record}
		q, err := rowToQuestion(row)
		if err != nil {
			result.Errors = append(result.Errors, quiz.Finding{
				Field:    fmt.Sprintf("row %d", rowNumber),
				Message:  err.Error(),
				Severity: quiz.SeverityError,
			})
			continue
		}

		findings := quiz.ValidateQuestion(q)
		if quiz.HasErrors(findings) {
			for _, f := range findings {
				f.Field = fmt.Sprintf("row %d, %s", rowNumber, f.Field)
				result.Errors = append(result.Errors, f)
			}
			continue
		}
		for _, f := range findings {
			f.Field = fmt.Sprintf("row %d, %s", rowNumber, f.Field)
			result.Warnings = append(result.Warnings, f)
		}
		result.Questions = append(result.Questions, q)
	}

	result.Success = len(result.Errors) == 0
	return result
}

type rowReader struct {
	index  map[string]int
	record []string
}

func (r rowReader) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r rowReader) getFloat(col string, def float64) float64 {
	v, err := strconv.ParseFloat(r.get(col), 64)
	if err != nil {
		return def
	}
	return v
}

func rowToQuestion(row rowReader) (quiz.Question, error) {
	typ := quiz.QuestionType(strings.ToLower(row.get(colType)))
	if typ == "" {
		return nil, fmt.Errorf("missing question type")
	}
	if !quiz.KnownType(typ) {
		return nil, fmt.Errorf("unsupported question type %q", typ)
	}

	now := time.Now()
	base := quiz.QuestionBase{
		ID:              quiz.NewID(),
		Type:            typ,
		Title:           row.get(colTitle),
		Text:            row.get(colText),
		DefaultGrade:    row.getFloat(colGrade, 1),
		Penalty:         row.getFloat(colPenalty, 0),
		GeneralFeedback: row.get(colGeneralFeedback),
		Tags:            splitTags(row.get(colTags)),
		Created:         now,
		Modified:        now,
	}
	opts := parseOptions(row.get(colOptions))

	switch typ {
	case quiz.TypeMCQ:
		return &quiz.MCQQuestion{
			QuestionBase:   base,
			Single:         opts["single"] != "false",
			ShuffleAnswers: opts["shuffle"] == "true",
			Answers:        parseAnswers(row),
		}, nil
	case quiz.TypeTrueFalse:
		return &quiz.TrueFalseQuestion{
			QuestionBase:  base,
			CorrectAnswer: row.getFloat(fractionCol(1), 0) > 0,
			TrueFeedback:  row.get(feedbackCol(1)),
			FalseFeedback: row.get(feedbackCol(2)),
		}, nil
	case quiz.TypeShortAnswer:
		return &quiz.ShortAnswerQuestion{
			QuestionBase:  base,
			CaseSensitive: opts["caseSensitive"] == "true",
			Answers:       parseAnswers(row),
		}, nil
	case quiz.TypeMatching:
		return &quiz.MatchingQuestion{
			QuestionBase:   base,
			ShuffleAnswers: opts["shuffle"] == "true",
			Subquestions:   parseMatchPairs(row),
		}, nil
	}
	return nil, fmt.Errorf("unsupported question type %q", typ)
}

func parseAnswers(row rowReader) []quiz.Answer {
	answers := []quiz.Answer{}
	for i := 1; i <= answerSlots; i++ {
		text := row.get(answerCol(i))
		if text == "" {
			continue
		}
		answers = append(answers, quiz.Answer{
			ID:       quiz.NewID(),
			Text:     text,
			Fraction: row.getFloat(fractionCol(i), 0),
			Feedback: row.get(feedbackCol(i)),
		})
	}
	return answers
}

// parseMatchPairs splits "left:right" cells on the first colon. Cells
// without a separator are dropped rather than failing the row.
func parseMatchPairs(row rowReader) []quiz.MatchPair {
	pairs := []quiz.MatchPair{}
	for i := 1; i <= answerSlots; i++ {
		cell := row.get(answerCol(i))
		if cell == "" {
			continue
		}
		left, right, ok := strings.Cut(cell, ":")
		if !ok {
			continue
		}
		pairs = append(pairs, quiz.MatchPair{
			ID:         quiz.NewID(),
			Text:       strings.TrimSpace(left),
			AnswerText: strings.TrimSpace(right),
		})
	}
	return pairs
}

// parseOptions reads the ";"-separated key=value token list. Unknown keys
// are kept (and ignored by the callers); malformed tokens are skipped.
func parseOptions(s string) map[string]string {
	opts := map[string]string{}
	if s == "" {
		return opts
	}
	for _, tok := range strings.Split(s, ";") {
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			opts[k] = v
		}
	}
	return opts
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
