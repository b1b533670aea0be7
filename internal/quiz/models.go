package quiz

import "time"

// QuestionType tags the four supported question kinds.
type QuestionType string

const (
	TypeMCQ         QuestionType = "mcq"
	TypeTrueFalse   QuestionType = "truefalse"
	TypeShortAnswer QuestionType = "shortanswer"
	TypeMatching    QuestionType = "matching"
)

// KnownType reports whether t is one of the four supported kinds.
func KnownType(t QuestionType) bool {
	switch t {
	case TypeMCQ, TypeTrueFalse, TypeShortAnswer, TypeMatching:
		return true
	}
	return false
}

// QuestionBase carries the fields shared by every question kind.
// Penalty is a percentage (0-100); the Moodle export converts it to 0-1.
type QuestionBase struct {
	ID              string       `json:"id"`
	Type            QuestionType `json:"type"`
	Title           string       `json:"title"`
	Text            string       `json:"text"`
	DefaultGrade    float64      `json:"defaultGrade"`
	Penalty         float64      `json:"penalty"`
	GeneralFeedback string       `json:"generalFeedback,omitempty"`
	Tags            []string     `json:"tags,omitempty"`
	Created         time.Time    `json:"created"`
	Modified        time.Time    `json:"modified"`
}

// Base returns the shared fields; it also lets QuestionBase satisfy half of
// the Question interface via embedding.
func (b *QuestionBase) Base() *QuestionBase { return b }

// Touch stamps the modification time.
func (b *QuestionBase) Touch() { b.Modified = time.Now() }

// Question is the closed sum over the four question kinds. Only the types in
// this package implement it, so codec and validator switches stay exhaustive.
type Question interface {
	Base() *QuestionBase
	isQuestion()
}

// Answer is one selectable/acceptable answer with its grading fraction
// (percentage of the question's points, 0-100) and optional feedback.
type Answer struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Fraction float64 `json:"fraction"`
	Feedback string  `json:"feedback,omitempty"`
}

// MatchPair is one left/right pair of a matching question. Each left Text has
// exactly one correct AnswerText drawn from the shared right-hand pool.
type MatchPair struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	AnswerText string `json:"answerText"`
}

// MCQQuestion is a single- or multi-select multiple choice question.
type MCQQuestion struct {
	QuestionBase
	Single                   bool     `json:"single"`
	ShuffleAnswers           bool     `json:"shuffleAnswers"`
	Answers                  []Answer `json:"answers"`
	CorrectFeedback          string   `json:"correctFeedback,omitempty"`
	PartiallyCorrectFeedback string   `json:"partiallyCorrectFeedback,omitempty"`
	IncorrectFeedback        string   `json:"incorrectFeedback,omitempty"`
}

type TrueFalseQuestion struct {
	QuestionBase
	CorrectAnswer bool   `json:"correctAnswer"`
	TrueFeedback  string `json:"trueFeedback,omitempty"`
	FalseFeedback string `json:"falseFeedback,omitempty"`
}

type ShortAnswerQuestion struct {
	QuestionBase
	CaseSensitive bool     `json:"caseSensitive"`
	Answers       []Answer `json:"answers"`
}

type MatchingQuestion struct {
	QuestionBase
	ShuffleAnswers bool        `json:"shuffleAnswers"`
	Subquestions   []MatchPair `json:"subquestions"`
}

func (*MCQQuestion) isQuestion()         {}
func (*TrueFalseQuestion) isQuestion()   {}
func (*ShortAnswerQuestion) isQuestion() {}
func (*MatchingQuestion) isQuestion()    {}

// GradingMethod selects how multiple attempts combine into a final grade.
type GradingMethod string

const (
	GradeHighest GradingMethod = "highest"
	GradeAverage GradingMethod = "average"
	GradeFirst   GradingMethod = "first"
	GradeLast    GradingMethod = "last"
)

type QuizSettings struct {
	Shuffle            bool          `json:"shuffle"`
	TimeLimit          int           `json:"timeLimit,omitempty"` // minutes, 0 = none
	Attempts           int           `json:"attempts,omitempty"`  // 0 = unlimited
	GradingMethod      GradingMethod `json:"gradingMethod"`
	ShowFeedback       bool          `json:"showFeedback"`
	ShowCorrectAnswers bool          `json:"showCorrectAnswers"`
}

// Quiz is an ordered collection of questions. Question order is significant
// for display and for shuffle-disabled runs.
type Quiz struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category"`
	Questions   []Question   `json:"questions"`
	Created     time.Time    `json:"created"`
	Modified    time.Time    `json:"modified"`
	Settings    QuizSettings `json:"settings"`
}

// QuestionByID returns the question with the given id, or nil.
func (q *Quiz) QuestionByID(id string) Question {
	for _, qu := range q.Questions {
		if qu.Base().ID == id {
			return qu
		}
	}
	return nil
}
