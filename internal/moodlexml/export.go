// Package moodlexml renders quizzes into the Moodle question-bank XML
// dialect, and shape-checks such documents. Export is one-directional: the
// model is the source of truth and XML is never parsed back into it.
package moodlexml

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// Rich text fields (question text, feedback) are wrapped in CDATA so embedded
// HTML survives untouched. Titles, tags and short/matching answer texts are
// entity-escaped instead; Moodle treats them as short plain strings. That
// asymmetry is part of the wire format, keep it.

// Export renders the full <quiz> document: a category banner naming the
// quiz, then one <question> block per question.
func Export(q *quiz.Quiz) string {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString("<quiz>\n")
	sb.WriteString("<!-- question: 0  -->\n")
	sb.WriteString("<question type=\"category\">\n<category>\n")
	fmt.Fprintf(&sb, "<text>$course$/top/Default for %s</text>\n", html.EscapeString(q.Name))
	sb.WriteString("</category>\n</question>\n")

	for _, qu := range q.Questions {
		sb.WriteString("\n")
		sb.WriteString(questionXML(qu))
		sb.WriteString("\n")
	}

	sb.WriteString("\n</quiz>")
	return sb.String()
}

func questionXML(q quiz.Question) string {
	switch v := q.(type) {
	case *quiz.MCQQuestion:
		return mcqXML(v)
	case *quiz.TrueFalseQuestion:
		return trueFalseXML(v)
	case *quiz.ShortAnswerQuestion:
		return shortAnswerXML(v)
	case *quiz.MatchingQuestion:
		return matchingXML(v)
	}
	return ""
}

func mcqXML(q *quiz.MCQQuestion) string {
	var sb strings.Builder
	openQuestion(&sb, &q.QuestionBase, "multichoice")
	fmt.Fprintf(&sb, "  <single>%t</single>\n", q.Single)
	fmt.Fprintf(&sb, "  <shuffleanswers>%s</shuffleanswers>\n", zeroOne(q.ShuffleAnswers))
	sb.WriteString("  <answernumbering>abc</answernumbering>\n")
	sb.WriteString("  <showstandardinstruction>0</showstandardinstruction>\n")
	writeOptionalCDATABlock(&sb, "correctfeedback", q.CorrectFeedback)
	writeOptionalCDATABlock(&sb, "partiallycorrectfeedback", q.PartiallyCorrectFeedback)
	writeOptionalCDATABlock(&sb, "incorrectfeedback", q.IncorrectFeedback)
	for _, a := range q.Answers {
		fmt.Fprintf(&sb, "  <answer fraction=\"%s\" format=\"html\">\n", formatNumber(a.Fraction))
		fmt.Fprintf(&sb, "    <text><![CDATA[%s]]></text>\n", a.Text)
		writeAnswerFeedback(&sb, a.Feedback)
		sb.WriteString("  </answer>\n")
	}
	closeQuestion(&sb, q.Tags)
	return sb.String()
}

func trueFalseXML(q *quiz.TrueFalseQuestion) string {
	var sb strings.Builder
	openQuestion(&sb, &q.QuestionBase, "truefalse")
	writeBoolAnswer(&sb, "true", q.CorrectAnswer, q.TrueFeedback)
	writeBoolAnswer(&sb, "false", !q.CorrectAnswer, q.FalseFeedback)
	closeQuestion(&sb, q.Tags)
	return sb.String()
}

func writeBoolAnswer(sb *strings.Builder, label string, correct bool, feedback string) {
	fraction := "0"
	if correct {
		fraction = "100"
	}
	fmt.Fprintf(sb, "  <answer fraction=\"%s\" format=\"moodle_auto_format\">\n", fraction)
	fmt.Fprintf(sb, "    <text>%s</text>\n", label)
	writeAnswerFeedback(sb, feedback)
	sb.WriteString("  </answer>\n")
}

func shortAnswerXML(q *quiz.ShortAnswerQuestion) string {
	var sb strings.Builder
	openQuestion(&sb, &q.QuestionBase, "shortanswer")
	fmt.Fprintf(&sb, "  <usecase>%s</usecase>\n", zeroOne(q.CaseSensitive))
	for _, a := range q.Answers {
		fmt.Fprintf(&sb, "  <answer fraction=\"%s\" format=\"moodle_auto_format\">\n", formatNumber(a.Fraction))
		fmt.Fprintf(&sb, "    <text>%s</text>\n", html.EscapeString(a.Text))
		writeAnswerFeedback(&sb, a.Feedback)
		sb.WriteString("  </answer>\n")
	}
	closeQuestion(&sb, q.Tags)
	return sb.String()
}

func matchingXML(q *quiz.MatchingQuestion) string {
	var sb strings.Builder
	openQuestion(&sb, &q.QuestionBase, "matching")
	fmt.Fprintf(&sb, "  <shuffleanswers>%s</shuffleanswers>\n", zeroOne(q.ShuffleAnswers))
	sb.WriteString("  <correctfeedback format=\"html\">\n    <text>Votre réponse est correcte.</text>\n  </correctfeedback>\n")
	sb.WriteString("  <partiallycorrectfeedback format=\"html\">\n    <text>Votre réponse est partiellement correcte.</text>\n  </partiallycorrectfeedback>\n")
	sb.WriteString("  <incorrectfeedback format=\"html\">\n    <text>Votre réponse est incorrecte.</text>\n  </incorrectfeedback>\n")
	for _, sq := range q.Subquestions {
		sb.WriteString("  <subquestion format=\"html\">\n")
		fmt.Fprintf(&sb, "    <text><![CDATA[%s]]></text>\n", sq.Text)
		sb.WriteString("    <answer>\n")
		fmt.Fprintf(&sb, "      <text>%s</text>\n", html.EscapeString(sq.AnswerText))
		sb.WriteString("    </answer>\n")
		sb.WriteString("  </subquestion>\n")
	}
	closeQuestion(&sb, q.Tags)
	return sb.String()
}

// openQuestion writes the shared leading block: comment, name, question
// text, general feedback, grade and penalty. Penalty converts from the
// model's 0-100 percent scale to Moodle's 0-1 scale.
func openQuestion(sb *strings.Builder, b *quiz.QuestionBase, moodleType string) {
	fmt.Fprintf(sb, "<!-- question: %s  -->\n", b.ID)
	fmt.Fprintf(sb, "<question type=\"%s\">\n", moodleType)
	fmt.Fprintf(sb, "  <name>\n    <text>%s</text>\n  </name>\n", html.EscapeString(b.Title))
	fmt.Fprintf(sb, "  <questiontext format=\"html\">\n    <text><![CDATA[%s]]></text>\n  </questiontext>\n", b.Text)
	fmt.Fprintf(sb, "  <generalfeedback format=\"html\">\n    <text><![CDATA[%s]]></text>\n  </generalfeedback>\n", b.GeneralFeedback)
	fmt.Fprintf(sb, "  <defaultgrade>%s</defaultgrade>\n", formatNumber(b.DefaultGrade))
	fmt.Fprintf(sb, "  <penalty>%s</penalty>\n", formatNumber(b.Penalty/100))
	sb.WriteString("  <hidden>0</hidden>\n")
}

func closeQuestion(sb *strings.Builder, tags []string) {
	for _, tag := range tags {
		fmt.Fprintf(sb, "  <tag>\n    <text>%s</text>\n  </tag>\n", html.EscapeString(tag))
	}
	sb.WriteString("</question>")
}

func writeOptionalCDATABlock(sb *strings.Builder, element, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(sb, "  <%s format=\"html\">\n    <text><![CDATA[%s]]></text>\n  </%s>\n", element, text, element)
}

func writeAnswerFeedback(sb *strings.Builder, feedback string) {
	if feedback == "" {
		return
	}
	fmt.Fprintf(sb, "    <feedback format=\"html\">\n      <text><![CDATA[%s]]></text>\n    </feedback>\n", feedback)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func zeroOne(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
