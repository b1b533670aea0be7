package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ggaillard/elea-quiz-generateur/internal/grading"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// POST /api/quizzes/{id}/score scores a preview attempt. The body is a map
// of question id to response payload; the payload shape depends on the
// question kind (see the grading package).
func ScoreAttemptHandler(svc *quiz.Service, grader grading.Grader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.Store().GetQuiz(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		var responses map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
			http.Error(w, "invalid responses body: "+err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, grading.GradeAttempt(grader, q, responses))
	}
}
