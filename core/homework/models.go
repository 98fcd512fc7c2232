package homework

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mocnepiwko/uni-diary/core"
)

// Homework is an assignment for a subject. Subject is matched against lesson titles by text only.
type Homework struct {
	ID          string    `json:"id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"` // UTC
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// NewHomework contains information needed to create a new Homework.
type NewHomework struct {
	Subject     string `json:"subject" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	Deadline    string `json:"deadline" validate:"required,deadline"`
}

func (nh *NewHomework) Validate(validate *validator.Validate) error {
	nh.Subject = core.CleanString(nh.Subject)
	nh.Description = core.CleanString(nh.Description)
	nh.Deadline = core.CleanString(nh.Deadline)
	return validate.Struct(nh)
}

var deadlineLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDeadline accepts a plain date (2006-01-02) or an RFC3339 timestamp.
// A deadline is a calendar day: timestamps keep the date written in their own offset, at 00:00 UTC.
func ParseDeadline(s string) (time.Time, bool) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

type QueryFilter struct {
	Subject string `query:"subject"`
}
