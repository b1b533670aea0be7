package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var vErr *quiz.ValidationFailedError
	switch {
	case errors.Is(err, quiz.ErrQuizNotFound), errors.Is(err, quiz.ErrQuestionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":    vErr.Error(),
			"findings": vErr.Findings,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
