package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// GET /api/quizzes
func ListQuizzesHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		out, err := svc.Store().ListQuizzes(r.Context(), quiz.ListOpts{
			Q:      r.URL.Query().Get("q"),
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /api/quizzes  {"name": "..."}
func CreateQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		q, err := svc.CreateQuiz(r.Context(), body.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, q)
	}
}

// GET /api/quizzes/{id}
func GetQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.Store().GetQuiz(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// PUT /api/quizzes/{id} replaces the quiz document.
func UpdateQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q quiz.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "invalid quiz document: "+err.Error(), http.StatusBadRequest)
			return
		}
		q.ID = chi.URLParam(r, "id")
		if err := svc.SaveQuiz(r.Context(), &q); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &q)
	}
}

// DELETE /api/quizzes/{id}
func DeleteQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteQuiz(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/quizzes/current
func GetCurrentQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := svc.Store().GetCurrentQuizID(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if id == "" {
			writeJSON(w, http.StatusOK, nil)
			return
		}
		q, err := svc.Store().GetQuiz(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// PUT /api/quizzes/current  {"id": "..."} ("" clears the pointer)
func SetCurrentQuizHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		if err := svc.Store().SetCurrentQuizID(r.Context(), body.ID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /api/quizzes/{id}/questions. With ?type= an empty factory question of
// that kind is appended; otherwise the body must be a full question document.
func SaveQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "id")

		if t := r.URL.Query().Get("type"); t != "" {
			q, err := quiz.NewEmptyQuestion(quiz.QuestionType(t))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			// factory questions are intentionally incomplete; bypass the
			// validation gate and let the author fill them in
			if err := svc.AddQuestions(r.Context(), quizID, []quiz.Question{q}); err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, q)
			return
		}

		raw, err := readBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q, err := quiz.UnmarshalQuestion(raw)
		if err != nil {
			http.Error(w, "invalid question document: "+err.Error(), http.StatusBadRequest)
			return
		}
		findings, err := svc.SaveQuestion(r.Context(), quizID, q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"question": q,
			"warnings": findings,
		})
	}
}

// DELETE /api/quizzes/{id}/questions/{qid}
func DeleteQuestionHandler(svc *quiz.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.DeleteQuestion(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "qid"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /api/questions/validate runs the validation engine over a question
// document without persisting anything.
func ValidateQuestionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		q, err := quiz.UnmarshalQuestion(raw)
		if err != nil {
			http.Error(w, "invalid question document: "+err.Error(), http.StatusBadRequest)
			return
		}
		findings := quiz.ValidateQuestion(q)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"valid":    !quiz.HasErrors(findings),
			"findings": findings,
		})
	}
}
