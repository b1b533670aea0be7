package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// SQLStore persists quizzes in a quizzes table with the questions and
// settings as JSON columns, plus a single-row app_state table holding the
// current-quiz pointer. Works against both sqlite and postgres; the
// placeholder syntax ($1...) is accepted by both drivers in use.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

const currentQuizKey = "current_quiz_id"

func (s *SQLStore) PutQuiz(ctx context.Context, q *Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	sj, err := json.Marshal(q.Settings)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,name,description,category,questions_json,settings_json,created_at,modified_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, description=EXCLUDED.description,
			category=EXCLUDED.category, questions_json=EXCLUDED.questions_json,
			settings_json=EXCLUDED.settings_json, modified_at=EXCLUDED.modified_at`,
		q.ID, q.Name, q.Description, q.Category, string(qj), string(sj),
		q.Created.Unix(), q.Modified.Unix())
	return err
}

func (s *SQLStore) GetQuiz(ctx context.Context, id string) (*Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name,description,category,questions_json,settings_json,created_at,modified_at
		FROM quizzes WHERE id=$1`, id)
	var (
		q                 Quiz
		qjson, sjson      string
		created, modified int64
	)
	if err := row.Scan(&q.ID, &q.Name, &q.Description, &q.Category, &qjson, &sjson, &created, &modified); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	questions, err := UnmarshalQuestions([]byte(qjson))
	if err != nil {
		return nil, err
	}
	q.Questions = questions
	if err := json.Unmarshal([]byte(sjson), &q.Settings); err != nil {
		return nil, err
	}
	q.Created = time.Unix(created, 0)
	q.Modified = time.Unix(modified, 0)
	return &q, nil
}

func (s *SQLStore) ListQuizzes(ctx context.Context, opts ListOpts) ([]QuizSummary, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,name,category,questions_json,modified_at
		FROM quizzes
		WHERE ($1 = '' OR lower(name) LIKE '%' || lower($1) || '%')
		ORDER BY modified_at DESC
		LIMIT $2 OFFSET $3`, opts.Q, limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []QuizSummary{}
	for rows.Next() {
		var (
			sum      QuizSummary
			qjson    string
			modified int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Category, &qjson, &modified); err != nil {
			return nil, err
		}
		var raw []json.RawMessage
		if err := json.Unmarshal([]byte(qjson), &raw); err == nil {
			sum.QuestionCount = len(raw)
		}
		sum.Modified = time.Unix(modified, 0)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) DeleteQuiz(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM quizzes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuizNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key=$1 AND value=$2`, currentQuizKey, id)
	return err
}

func (s *SQLStore) GetCurrentQuizID(ctx context.Context) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key=$1`, currentQuizKey)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

func (s *SQLStore) SetCurrentQuizID(ctx context.Context, id string) error {
	if id == "" {
		_, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key=$1`, currentQuizKey)
		return err
	}
	if _, err := s.GetQuiz(ctx, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO app_state (key,value) VALUES ($1,$2)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`, currentQuizKey, id)
	return err
}
