package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ggaillard/elea-quiz-generateur/internal/grading"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

func newTestServer(t *testing.T) (*httptest.Server, *quiz.Service) {
	t.Helper()
	svc := quiz.NewService(quiz.NewInMemoryStore())
	srv := httptest.NewServer(Routes(svc, grading.NewGrader(), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv, svc
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func mcqDoc(title string) map[string]interface{} {
	return map[string]interface{}{
		"type":         "mcq",
		"id":           quiz.NewID(),
		"title":        title,
		"text":         "Texte ?",
		"defaultGrade": 1,
		"penalty":      0,
		"single":       true,
		"answers": []map[string]interface{}{
			{"id": "good", "text": "Oui", "fraction": 100},
			{"id": "bad", "text": "Non", "fraction": 0},
		},
		"created":  "2024-01-01T00:00:00Z",
		"modified": "2024-01-01T00:00:00Z",
	}
}

func TestCreateGetDeleteQuiz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes", map[string]string{"name": "Géo"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created quiz.Quiz
	decode(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Géo", created.Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got quiz.Quiz
	decode(t, resp, &got)
	assert.Equal(t, created.ID, got.ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/quizzes", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []quiz.QuizSummary
	decode(t, resp, &list)
	require.Len(t, list, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/quizzes/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateQuiz_RequiresName(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSaveQuestion(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Q")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/questions", mcqDoc("Valide"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	stored, err := svc.Store().GetQuiz(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, stored.Questions, 1)
	assert.Equal(t, "Valide", stored.Questions[0].Base().Title)
}

func TestSaveQuestion_InvalidReturns422(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Q")
	require.NoError(t, err)

	doc := mcqDoc("")
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/questions", doc)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Findings []quiz.Finding `json:"findings"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Findings)

	stored, _ := svc.Store().GetQuiz(context.Background(), q.ID)
	assert.Empty(t, stored.Questions)
}

func TestSaveQuestion_FactoryBypassesValidation(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Q")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/questions?type=matching", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	stored, _ := svc.Store().GetQuiz(context.Background(), q.ID)
	require.Len(t, stored.Questions, 1)
	assert.Equal(t, quiz.TypeMatching, stored.Questions[0].Base().Type)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/questions?type=essay", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCurrentQuizPointer(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Q")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw json.RawMessage
	decode(t, resp, &raw)
	assert.Equal(t, "null", strings.TrimSpace(string(raw)))

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/quizzes/current", map[string]string{"id": q.ID})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/current", nil)
	var got quiz.Quiz
	decode(t, resp, &got)
	assert.Equal(t, q.ID, got.ID)
}

func TestExportQuiz_XML(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Export")
	require.NoError(t, err)
	mcq, err := quiz.UnmarshalQuestion(mustJSON(t, mcqDoc("Q1")))
	require.NoError(t, err)
	_, err = svc.SaveQuestion(context.Background(), q.ID, mcq)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/"+q.ID+"/export?format=xml", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Export.xml"`)

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<question type="multichoice">`)
}

func TestExportQuiz_RefusesInvalidQuestions(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Export")
	require.NoError(t, err)
	// a factory question is incomplete and fails validation
	bad, err := quiz.NewEmptyQuestion(quiz.TypeMCQ)
	require.NoError(t, err)
	require.NoError(t, svc.AddQuestions(context.Background(), q.ID, []quiz.Question{bad}))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/"+q.ID+"/export", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()
}

func TestExportQuiz_UnsupportedFormat(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Export")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/quizzes/"+q.ID+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestImportCSV(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Import")
	require.NoError(t, err)

	csv := "Type,Titre,Question,Note,Pénalité,Feedback général,Tags," +
		"Réponse 1,Fraction 1,Feedback 1,Réponse 2,Fraction 2,Feedback 2," +
		"Réponse 3,Fraction 3,Feedback 3,Réponse 4,Fraction 4,Feedback 4," +
		"Réponse 5,Fraction 5,Feedback 5,Options spéciales\n" +
		"truefalse,VF,Vrai ou faux ?,1,0,,,Vrai,100,,Faux,0,,,,,,,,,,,\n"

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/import/csv", strings.NewReader(csv))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/csv")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
	}
	decode(t, resp, &body)
	assert.True(t, body.Success)

	stored, _ := svc.Store().GetQuiz(context.Background(), q.ID)
	require.Len(t, stored.Questions, 1)
	assert.Equal(t, quiz.TypeTrueFalse, stored.Questions[0].Base().Type)
}

func TestCSVTemplate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/import/csv/template", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Headers      []string            `json:"headers"`
		SampleData   []map[string]string `json:"sampleData"`
		Instructions string              `json:"instructions"`
	}
	decode(t, resp, &body)
	assert.NotEmpty(t, body.Headers)
	assert.NotEmpty(t, body.SampleData)
	assert.NotEmpty(t, body.Instructions)
}

func TestValidateQuestionEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/questions/validate", mcqDoc("OK"))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Valid    bool           `json:"valid"`
		Findings []quiz.Finding `json:"findings"`
	}
	decode(t, resp, &body)
	assert.True(t, body.Valid)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/questions/validate", mcqDoc(""))
	decode(t, resp, &body)
	assert.False(t, body.Valid)
	assert.NotEmpty(t, body.Findings)
}

func TestValidateXMLEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/validate/xml",
		strings.NewReader("<quiz></quiz>"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}
	decode(t, resp, &body)
	assert.False(t, body.Valid)
	assert.Contains(t, body.Errors[0], "no questions found")
}

func TestScoreAttempt(t *testing.T) {
	srv, svc := newTestServer(t)
	q, err := svc.CreateQuiz(context.Background(), "Score")
	require.NoError(t, err)
	mcq, err := quiz.UnmarshalQuestion(mustJSON(t, mcqDoc("Q1")))
	require.NoError(t, err)
	_, err = svc.SaveQuestion(context.Background(), q.ID, mcq)
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/quizzes/"+q.ID+"/score",
		map[string]interface{}{mcq.Base().ID: "good"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result grading.AttemptResult
	decode(t, resp, &result)
	assert.Equal(t, float64(1), result.Score)
	assert.Equal(t, float64(1), result.MaxScore)
	assert.Equal(t, 100, result.Percentage)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	buf, err := json.Marshal(v)
	require.NoError(t, err)
	return buf
}
