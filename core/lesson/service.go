package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core"
)

type (
	// Repository persists lessons.
	// QueryLessons returns matches ordered by StartTime ascending.
	// DeleteLesson succeeds when no lesson has that id.
	Repository interface {
		CreateLesson(ctx context.Context, l Lesson) (Lesson, error)
		QueryLessons(ctx context.Context, filter QueryFilter) ([]Lesson, error)
		DeleteLesson(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		notifier core.Notifier
		validate *validator.Validate
		logger   core.Logger
	}
)

func NewService(repo Repository, notifier core.Notifier, validate *validator.Validate, logger core.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		validate: validate,
		logger:   logger,
	}
}

// Create saves a new Lesson and announces it to the group chat.
func (svc *Service) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return Lesson{}, err
	}

	now := time.Now().UTC()
	l, err := svc.repo.CreateLesson(ctx, Lesson{
		Title:     nl.Title,
		Teacher:   nl.Teacher,
		Room:      nl.Room,
		Type:      nl.Type,
		Day:       nl.Day,
		StartTime: nl.StartTime,
		EndTime:   nl.EndTime,
		IsCustom:  nl.IsCustom,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Lesson{}, pkgerrors.Wrap(err, "creating lesson")
	}

	msg, err := NewLessonMessage(l)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("rendering new lesson message: %v", err), err)
		return l, nil
	}
	svc.notifier.Send(ctx, msg)
	return l, nil
}

// QueryAll returns the whole week, ordered by StartTime.
func (svc *Service) QueryAll(ctx context.Context) ([]Lesson, error) {
	return svc.repo.QueryLessons(ctx, QueryFilter{})
}

// QueryByDay returns the lessons of day, ordered by StartTime.
func (svc *Service) QueryByDay(ctx context.Context, day string) ([]Lesson, error) {
	return svc.repo.QueryLessons(ctx, QueryFilter{Day: day})
}

// QueryStartingAt returns the lessons whose Day and StartTime are exactly day and hhmm.
func (svc *Service) QueryStartingAt(ctx context.Context, day, hhmm string) ([]Lesson, error) {
	if day == "" || hhmm == "" {
		return nil, nil
	}
	return svc.repo.QueryLessons(ctx, QueryFilter{Day: day, StartTime: hhmm})
}

// Delete removes the lesson. Homework sharing its title is left as is.
func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteLesson(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "deleting lesson")
	}
	return nil
}
