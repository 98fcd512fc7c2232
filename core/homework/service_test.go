package homework_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/storage/database/inmem"
	"github.com/mocnepiwko/uni-diary/tests"
)

func setup(t *testing.T) (*homework.Service, *testutil.Notifier) {
	validate, translator := core.NewValidator()
	homework.InitValidators(validate, translator)
	notifier := new(testutil.Notifier)
	repo := inmemdb.NewHomeworkRepository(inmemdb.Open())
	return homework.NewService(repo, notifier, validate, testutil.NopLogger{}), notifier
}

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOk bool
	}{
		{in: "2025-05-01", want: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), wantOk: true},
		{in: "2025-05-01T18:00:00+03:00", want: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), wantOk: true},
		{in: "2025-05-01T00:30:00+03:00", want: time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), wantOk: true},
		{in: "2025-04-30T23:30:00-05:00", want: time.Date(2025, time.April, 30, 0, 0, 0, 0, time.UTC), wantOk: true},
		{in: "01.05.2025"},
		{in: "2025-13-01"},
		{in: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := homework.ParseDeadline(tt.in)
			assert.Equal(t, tt.wantOk, ok)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, notifier := setup(t)
	ctx := context.Background()

	t.Run("invalid", func(t *testing.T) {
		_, err := svc.Create(ctx, homework.NewHomework{Subject: " ", Description: "Задачи 1-10", Deadline: "01.05.2025"}, "Петров П.П.")
		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok, "want validation errors, got %v", err)
		tags := make(map[string]string)
		for _, fe := range verrs {
			tags[fe.Field()] = fe.Tag()
		}
		assert.Equal(t, map[string]string{"subject": "notblank", "deadline": "deadline"}, tags)
	})

	t.Run("no creator", func(t *testing.T) {
		_, err := svc.Create(ctx, homework.NewHomework{Subject: "Физика", Description: "Задачи 1-10", Deadline: "2025-05-01"}, "  ")
		var verr *core.ValidationError
		require.True(t, errors.As(err, &verr), "want *core.ValidationError, got %v", err)
		assert.Equal(t, homework.ErrNoCreator, verr.Err)
	})
	assert.Empty(t, notifier.Messages())

	hw, err := svc.Create(ctx, homework.NewHomework{
		Subject:     "Математический анализ",
		Description: "Задачи 1-10 из сборника",
		Deadline:    "2025-05-01",
	}, "Петров П.П.")
	require.NoError(t, err)
	assert.NotEmpty(t, hw.ID)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), hw.Deadline)
	assert.Equal(t, "Петров П.П.", hw.CreatedBy)

	msgs := notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "Новое ДЗ!")
	assert.Contains(t, msgs[0], "<b>Дедлайн:</b> 01.05.2025")
	assert.Contains(t, msgs[0], "<b>Добавил:</b> Петров П.П.")
}

func TestService_QueryBySubject(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	for _, nh := range []homework.NewHomework{
		{Subject: "Физика", Description: "Лабораторная 2", Deadline: "2025-05-20"},
		{Subject: "Физика", Description: "Лабораторная 1", Deadline: "2025-05-01"},
		{Subject: "История", Description: "Реферат", Deadline: "2025-04-01"},
	} {
		_, err := svc.Create(ctx, nh, "Петров П.П.")
		require.NoError(t, err)
	}

	hws, err := svc.QueryBySubject(ctx, " Физика ")
	require.NoError(t, err)
	require.Len(t, hws, 2)
	assert.Equal(t, "Лабораторная 1", hws[0].Description)
	assert.Equal(t, "Лабораторная 2", hws[1].Description)

	hws, err = svc.QueryBySubject(ctx, "физика")
	require.NoError(t, err)
	assert.Empty(t, hws, "subjects match exactly")
}

func TestService_Delete(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	hw, err := svc.Create(ctx, homework.NewHomework{Subject: "Физика", Description: "Лабораторная 1", Deadline: "2025-05-01"}, "Петров П.П.")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, hw.ID))
	hws, err := svc.QueryBySubject(ctx, "Физика")
	require.NoError(t, err)
	assert.Empty(t, hws)
	assert.NoError(t, svc.Delete(ctx, hw.ID))
}

func TestService_Create_deadlineDate(t *testing.T) {
	svc, notifier := setup(t)

	hw, err := svc.Create(context.Background(), homework.NewHomework{
		Subject:     "Физика",
		Description: "Лабораторная 1",
		Deadline:    "2025-05-01T00:30:00+03:00",
	}, "Петров П.П.")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), hw.Deadline)

	msgs := notifier.Messages()
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "<b>Дедлайн:</b> 01.05.2025")
}
