package quiz

import (
	"encoding/json"
	"fmt"
)

// Questions are persisted as plain JSON with a "type" tag. Unmarshalling has
// to dispatch on that tag before the concrete struct is known, so Quiz gets a
// custom UnmarshalJSON that decodes the questions array in two passes.
// Timestamps are RFC3339 strings on the wire and re-hydrate into time.Time.

// UnmarshalQuestion decodes a single tagged question document.
func UnmarshalQuestion(data []byte) (Question, error) {
	var probe struct {
		Type QuestionType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Type {
	case TypeMCQ:
		var q MCQQuestion
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, err
		}
		return &q, nil
	case TypeTrueFalse:
		var q TrueFalseQuestion
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, err
		}
		return &q, nil
	case TypeShortAnswer:
		var q ShortAnswerQuestion
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, err
		}
		return &q, nil
	case TypeMatching:
		var q MatchingQuestion
		if err := json.Unmarshal(data, &q); err != nil {
			return nil, err
		}
		return &q, nil
	default:
		return nil, fmt.Errorf("unknown question type %q", probe.Type)
	}
}

// UnmarshalQuestions decodes a JSON array of tagged questions.
func UnmarshalQuestions(data []byte) ([]Question, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make([]Question, 0, len(raw))
	for i, r := range raw {
		q, err := UnmarshalQuestion(r)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	type alias Quiz
	aux := struct {
		*alias
		Questions []json.RawMessage `json:"questions"`
	}{alias: (*alias)(q)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	q.Questions = q.Questions[:0]
	for i, r := range aux.Questions {
		qu, err := UnmarshalQuestion(r)
		if err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
		q.Questions = append(q.Questions, qu)
	}
	return nil
}
