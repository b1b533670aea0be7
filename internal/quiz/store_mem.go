package quiz

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	quizzes   map[string]*Quiz
	currentID string
}

// NewInMemoryStore returns a Store backed by process memory, used by tests
// and ephemeral runs.
func NewInMemoryStore() Store {
	return &memoryStore{quizzes: map[string]*Quiz{}}
}

// cloneQuiz deep-copies through the JSON codec so callers can mutate their
// copy without racing the store.
func cloneQuiz(q *Quiz) (*Quiz, error) {
	buf, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	var out Quiz
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *memoryStore) PutQuiz(_ context.Context, q *Quiz) error {
	c, err := cloneQuiz(q)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[c.ID] = c
	return nil
}

func (m *memoryStore) GetQuiz(_ context.Context, id string) (*Quiz, error) {
	m.mu.RLock()
	q, ok := m.quizzes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrQuizNotFound
	}
	return cloneQuiz(q)
}

func (m *memoryStore) ListQuizzes(_ context.Context, opts ListOpts) ([]QuizSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]QuizSummary, 0, len(m.quizzes))
	for _, q := range m.quizzes {
		if opts.Q != "" && !strings.Contains(strings.ToLower(q.Name), strings.ToLower(opts.Q)) {
			continue
		}
		out = append(out, QuizSummary{
			ID:            q.ID,
			Name:          q.Name,
			Category:      q.Category,
			QuestionCount: len(q.Questions),
			Modified:      q.Modified,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Modified.After(out[j].Modified) })

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []QuizSummary{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (m *memoryStore) DeleteQuiz(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.quizzes[id]; !ok {
		return ErrQuizNotFound
	}
	delete(m.quizzes, id)
	if m.currentID == id {
		m.currentID = ""
	}
	return nil
}

func (m *memoryStore) GetCurrentQuizID(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentID, nil
}

func (m *memoryStore) SetCurrentQuizID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if _, ok := m.quizzes[id]; !ok {
			return ErrQuizNotFound
		}
	}
	m.currentID = id
	return nil
}
