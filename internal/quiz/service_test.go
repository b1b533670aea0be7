package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *Quiz) {
	t.Helper()
	svc := NewService(NewInMemoryStore())
	q, err := svc.CreateQuiz(context.Background(), "Test quiz")
	require.NoError(t, err)
	return svc, q
}

func TestSaveQuestion_StampsModified(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	question := validMCQ()
	question.Modified = time.Time{}

	_, err := svc.SaveQuestion(ctx, q.ID, question)
	require.NoError(t, err)
	assert.False(t, question.Modified.IsZero(), "save must stamp the question's modified time")

	got, err := svc.Store().GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1)
	assert.True(t, got.Modified.After(q.Modified) || got.Modified.Equal(q.Modified))
}

func TestSaveQuestion_UpsertsByID(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	question := validMCQ()
	_, err := svc.SaveQuestion(ctx, q.ID, question)
	require.NoError(t, err)

	question.Title = "Edited"
	_, err = svc.SaveQuestion(ctx, q.ID, question)
	require.NoError(t, err)

	got, err := svc.Store().GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 1, "saving the same id twice must not duplicate")
	assert.Equal(t, "Edited", got.Questions[0].Base().Title)
}

func TestSaveQuestion_RejectsInvalid(t *testing.T) {
	svc, q := newTestService(t)

	bad := validMCQ()
	bad.Title = ""
	findings, err := svc.SaveQuestion(context.Background(), q.ID, bad)
	require.Error(t, err)
	var vErr *ValidationFailedError
	require.True(t, errors.As(err, &vErr))
	assert.True(t, HasErrors(findings))

	got, err := svc.Store().GetQuiz(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Questions, "invalid question must not be persisted")
}

func TestDeleteQuestion(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	question := validMCQ()
	_, err := svc.SaveQuestion(ctx, q.ID, question)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuestion(ctx, q.ID, question.ID))
	got, _ := svc.Store().GetQuiz(ctx, q.ID)
	assert.Empty(t, got.Questions)

	err = svc.DeleteQuestion(ctx, q.ID, "missing")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestDeleteQuiz_ClearsCurrentPointer(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Store().SetCurrentQuizID(ctx, q.ID))
	require.NoError(t, svc.DeleteQuiz(ctx, q.ID))

	current, err := svc.Store().GetCurrentQuizID(ctx)
	require.NoError(t, err)
	assert.Empty(t, current, "deleting the current quiz must clear the pointer")

	_, err = svc.Store().GetQuiz(ctx, q.ID)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestDeleteQuiz_KeepsUnrelatedCurrentPointer(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	other, err := svc.CreateQuiz(ctx, "Other")
	require.NoError(t, err)
	require.NoError(t, svc.Store().SetCurrentQuizID(ctx, other.ID))

	require.NoError(t, svc.DeleteQuiz(ctx, q.ID))
	current, err := svc.Store().GetCurrentQuizID(ctx)
	require.NoError(t, err)
	assert.Equal(t, other.ID, current)
}

func TestListQuizzes_FiltersByName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.CreateQuiz(ctx, "Histoire de France")
	require.NoError(t, err)

	out, err := svc.Store().ListQuizzes(ctx, ListOpts{Q: "histoire"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Histoire de France", out[0].Name)
	assert.Zero(t, out[0].QuestionCount)
}

func TestStoreReturnsCopies(t *testing.T) {
	svc, q := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveQuestion(ctx, q.ID, validMCQ())
	require.NoError(t, err)

	a, err := svc.Store().GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	a.Questions[0].Base().Title = "mutated locally"

	b, err := svc.Store().GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated locally", b.Questions[0].Base().Title)
}
