package moodlexml

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// ValidationResult reports the outcome of a shape check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type shapeQuiz struct {
	XMLName   xml.Name        `xml:"quiz"`
	Questions []shapeQuestion `xml:"question"`
}

type shapeQuestion struct {
	Type string    `xml:"type,attr"`
	Name shapeText `xml:"name"`
	Text shapeText `xml:"questiontext"`
}

type shapeText struct {
	Text string `xml:"text"`
}

// ValidateShape checks well-formedness and the minimal Moodle document
// shape: a <quiz> root, at least one question, a type attribute on every
// question, and a non-empty name and question text. It is a structural
// check only; semantic invariants (fraction sums etc.) live in the
// document-model validator and cannot be detected here because the XML is
// never reconstructed into the model. Category banner entries carry no
// name or question text and are exempt from those two checks.
func ValidateShape(content string) ValidationResult {
	var errs []string

	var doc shapeQuiz
	if err := xml.Unmarshal([]byte(content), &doc); err != nil {
		return ValidationResult{Valid: false, Errors: []string{"XML parse error: " + err.Error()}}
	}

	if len(doc.Questions) == 0 {
		errs = append(errs, "no questions found")
	}
	for i, q := range doc.Questions {
		if q.Type == "" {
			errs = append(errs, fmt.Sprintf("question %d: missing type attribute", i+1))
			continue
		}
		if q.Type == "category" {
			continue
		}
		if strings.TrimSpace(q.Name.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d: missing name", i+1))
		}
		if strings.TrimSpace(q.Text.Text) == "" {
			errs = append(errs, fmt.Sprintf("question %d: missing question text", i+1))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
