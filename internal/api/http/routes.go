package http

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ggaillard/elea-quiz-generateur/internal/grading"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// Routes mounts the API surface onto a fresh chi router.
func Routes(svc *quiz.Service, grader grading.Grader, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/quizzes", ListQuizzesHandler(svc))
		r.Post("/quizzes", CreateQuizHandler(svc))
		r.Get("/quizzes/current", GetCurrentQuizHandler(svc))
		r.Put("/quizzes/current", SetCurrentQuizHandler(svc))
		r.Route("/quizzes/{id}", func(r chi.Router) {
			r.Get("/", GetQuizHandler(svc))
			r.Put("/", UpdateQuizHandler(svc))
			r.Delete("/", DeleteQuizHandler(svc))
			r.Post("/questions", SaveQuestionHandler(svc))
			r.Delete("/questions/{qid}", DeleteQuestionHandler(svc))
			r.Get("/export", ExportQuizHandler(svc, log))
			r.Post("/import/csv", ImportCSVHandler(svc, log))
			r.Post("/score", ScoreAttemptHandler(svc, grader))
		})
		r.Post("/questions/validate", ValidateQuestionHandler())
		r.Get("/import/csv/template", CSVTemplateHandler())
		r.Post("/validate/xml", ValidateXMLHandler())
	})

	return r
}
