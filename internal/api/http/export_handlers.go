package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ggaillard/elea-quiz-generateur/internal/csvio"
	"github.com/ggaillard/elea-quiz-generateur/internal/moodlexml"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

// GET /api/quizzes/{id}/export?format=xml|csv
// Export is gated on validation: a quiz containing an error-invalid question
// is refused so broken documents never reach the LMS.
func ExportQuizHandler(svc *quiz.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		format := strings.ToLower(r.URL.Query().Get("format"))
		if format == "" {
			format = "xml"
		}

		q, err := svc.Store().GetQuiz(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		for _, question := range q.Questions {
			if findings := quiz.ValidateQuestion(question); quiz.HasErrors(findings) {
				writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
					"error":    "quiz contains invalid questions",
					"question": question.Base().ID,
					"findings": findings,
				})
				return
			}
		}

		switch format {
		case "xml":
			out := moodlexml.Export(q)
			if shape := moodlexml.ValidateShape(out); !shape.Valid {
				log.Error("generated XML failed shape validation",
					zap.String("quiz_id", id), zap.Strings("errors", shape.Errors))
				writeJSON(w, http.StatusInternalServerError, shape)
				return
			}
			serveAttachment(w, q.Name+".xml", "application/xml; charset=utf-8", out)
		case "csv":
			out, err := csvio.ExportQuiz(q)
			if err != nil {
				writeError(w, err)
				return
			}
			serveAttachment(w, q.Name+".csv", "text/csv; charset=utf-8", out)
		default:
			http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
		}
	}
}

// POST /api/quizzes/{id}/import/csv imports questions from CSV (multipart
// "file" field or raw body) and appends the accepted ones to the quiz.
func ImportCSVHandler(svc *quiz.Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quizID := chi.URLParam(r, "id")

		content, err := readUpload(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result := csvio.Import(content)
		if len(result.Questions) > 0 {
			if err := svc.AddQuestions(r.Context(), quizID, result.Questions); err != nil {
				writeError(w, err)
				return
			}
		}
		log.Info("csv import finished",
			zap.String("quiz_id", quizID),
			zap.Int("imported", len(result.Questions)),
			zap.Int("errors", len(result.Errors)),
			zap.Int("warnings", len(result.Warnings)))
		writeJSON(w, http.StatusOK, result)
	}
}

// GET /api/import/csv/template
func CSVTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, csvio.NewTemplate())
	}
}

// POST /api/validate/xml shape-checks an exported document.
func ValidateXMLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := readBody(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, moodlexml.ValidateShape(string(raw)))
	}
}

func serveAttachment(w http.ResponseWriter, filename, contentType, content string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = io.WriteString(w, content)
}

func readUpload(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		f, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer f.Close()
		buf, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(buf), nil
	}
	buf, err := readBody(r)
	return string(buf), err
}

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, 16<<20))
}
