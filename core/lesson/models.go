package lesson

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mocnepiwko/uni-diary/core"
)

// Types
const (
	TypeLecture  = "lecture"
	TypePractice = "practice"
	TypeLab      = "lab"
	TypeExam     = "exam"
)

var AllTypes = []string{TypeLecture, TypePractice, TypeLab, TypeExam}

func IsType(typ string) bool {
	for _, t := range AllTypes {
		if t == typ {
			return true
		}
	}
	return false
}

// Lesson is a class that recurs every week on Day.
type Lesson struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Teacher   string    `json:"teacher"`
	Room      string    `json:"room"`
	Type      string    `json:"type"`
	Day       string    `json:"day"`
	StartTime string    `json:"start_time"` // HH:MM
	EndTime   string    `json:"end_time"`   // HH:MM
	IsCustom  bool      `json:"is_custom"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	Title     string `json:"title" validate:"notblank"`
	Teacher   string `json:"teacher" validate:"notblank"`
	Room      string `json:"room" validate:"notblank"`
	Type      string `json:"type" validate:"omitempty,lessontype"`
	Day       string `json:"day" validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
	IsCustom  bool   `json:"is_custom"`
}

func (nl *NewLesson) Validate(validate *validator.Validate) error {
	nl.Title = core.CleanString(nl.Title)
	nl.Teacher = core.CleanString(nl.Teacher)
	nl.Room = core.CleanString(nl.Room)
	nl.Type = core.CleanString(nl.Type, true /* lower */)
	nl.Day = core.CleanString(nl.Day)
	nl.StartTime = core.CleanString(nl.StartTime)
	nl.EndTime = core.CleanString(nl.EndTime)
	if nl.Type == "" {
		nl.Type = TypeLecture
	}
	return validate.Struct(nl)
}

// QueryFilter matches lessons exactly on the set fields.
type QueryFilter struct {
	Day       string `query:"day"`
	StartTime string `query:"start_time"`
}
