package quiz_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggaillard/elea-quiz-generateur/internal/db"
	"github.com/ggaillard/elea-quiz-generateur/internal/quiz"
)

func newSQLStore(t *testing.T) *quiz.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })
	return quiz.NewSQLStore(dbh)
}

func TestSQLStore_PutGetRoundTrip(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	q := quiz.NewQuiz("Persisté")
	q.Description = "stocké en sqlite"
	mcq, err := quiz.NewEmptyQuestion(quiz.TypeMCQ)
	require.NoError(t, err)
	mcq.Base().Title = "Choix"
	mcq.Base().Text = "Lequel ?"
	q.Questions = append(q.Questions, mcq)

	require.NoError(t, store.PutQuiz(ctx, q))

	got, err := store.GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Name, got.Name)
	assert.Equal(t, q.Description, got.Description)
	assert.Equal(t, q.Settings.GradingMethod, got.Settings.GradingMethod)
	require.Len(t, got.Questions, 1)

	gotMCQ, ok := got.Questions[0].(*quiz.MCQQuestion)
	require.True(t, ok, "questions must rebuild as their concrete kinds")
	assert.Equal(t, "Choix", gotMCQ.Title)
	assert.Len(t, gotMCQ.Answers, 2)
}

func TestSQLStore_PutIsUpsert(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	q := quiz.NewQuiz("v1")
	require.NoError(t, store.PutQuiz(ctx, q))
	q.Name = "v2"
	require.NoError(t, store.PutQuiz(ctx, q))

	got, err := store.GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Name)

	list, err := store.ListQuizzes(ctx, quiz.ListOpts{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLStore_ListFilterAndCount(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	a := quiz.NewQuiz("Histoire de France")
	tf, err := quiz.NewEmptyQuestion(quiz.TypeTrueFalse)
	require.NoError(t, err)
	a.Questions = append(a.Questions, tf)
	require.NoError(t, store.PutQuiz(ctx, a))
	require.NoError(t, store.PutQuiz(ctx, quiz.NewQuiz("Mathématiques")))

	list, err := store.ListQuizzes(ctx, quiz.ListOpts{Q: "histoire"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, 1, list[0].QuestionCount)

	all, err := store.ListQuizzes(ctx, quiz.ListOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSQLStore_DeleteAndCurrentPointer(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	q := quiz.NewQuiz("À supprimer")
	require.NoError(t, store.PutQuiz(ctx, q))
	require.NoError(t, store.SetCurrentQuizID(ctx, q.ID))

	current, err := store.GetCurrentQuizID(ctx)
	require.NoError(t, err)
	assert.Equal(t, q.ID, current)

	require.NoError(t, store.DeleteQuiz(ctx, q.ID))
	current, err = store.GetCurrentQuizID(ctx)
	require.NoError(t, err)
	assert.Empty(t, current, "deleting the current quiz must clear the pointer")

	_, err = store.GetQuiz(ctx, q.ID)
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
	assert.ErrorIs(t, store.DeleteQuiz(ctx, q.ID), quiz.ErrQuizNotFound)
}

func TestSQLStore_SetCurrentValidatesTarget(t *testing.T) {
	store := newSQLStore(t)
	ctx := context.Background()

	err := store.SetCurrentQuizID(ctx, "missing")
	assert.ErrorIs(t, err, quiz.ErrQuizNotFound)

	require.NoError(t, store.SetCurrentQuizID(ctx, ""))
	current, err := store.GetCurrentQuizID(ctx)
	require.NoError(t, err)
	assert.Empty(t, current)
}
