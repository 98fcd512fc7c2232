package homework

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/mocnepiwko/uni-diary/core"
)

var ErrNoCreator = errors.New("homework requires a creator")

type (
	// Repository persists homework.
	// QueryHomeworks returns matches ordered by Deadline ascending.
	// DeleteHomework succeeds when no homework has that id.
	Repository interface {
		CreateHomework(ctx context.Context, hw Homework) (Homework, error)
		QueryHomeworks(ctx context.Context, filter QueryFilter) ([]Homework, error)
		DeleteHomework(ctx context.Context, id string) error
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

// Create saves a new Homework on behalf of creator and announces it to the group chat.
func (svc *Service) Create(ctx context.Context, nh NewHomework, creator string) (Homework, error) {
	if err := nh.Validate(svc.validate); err != nil {
		return Homework{}, err
	}
	creator = core.CleanString(creator)
	if creator == "" {
		return Homework{}, core.NewValidationError(ErrNoCreator, core.FieldError{Field: "created_by", Error: "this field is required"})
	}
	deadline, _ := ParseDeadline(nh.Deadline)

	now := time.Now().UTC()
	hw, err := svc.repo.CreateHomework(ctx, Homework{
		Subject:     nh.Subject,
		Description: nh.Description,
		Deadline:    deadline,
		CreatedBy:   creator,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return Homework{}, pkgerrors.Wrap(err, "creating homework")
	}

	msg, err := NewHomeworkMessage(hw)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("rendering new homework message: %v", err), err)
		return hw, nil
	}
	svc.notifier.Send(ctx, msg)
	return hw, nil
}

// QueryBySubject returns the subject's homework, soonest deadline first.
func (svc *Service) QueryBySubject(ctx context.Context, subject string) ([]Homework, error) {
	return svc.repo.QueryHomeworks(ctx, QueryFilter{Subject: core.CleanString(subject)})
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	if err := svc.repo.DeleteHomework(ctx, id); err != nil {
		return pkgerrors.Wrap(err, "deleting homework")
	}
	return nil
}
