package lesson

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mocnepiwko/uni-diary/core"
)

var (
	typeTag  = "lessontype"
	typeText = "type must be one of lecture, practice, lab or exam"

	endAfterStartTag  = "endafterstart"
	endAfterStartText = "lesson must end after it starts"
)

// InitValidators registers the lesson validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(typeTag, typeValidation)
	core.RegisterCustomTranslation(validate, translator, typeTag, typeText)

	validate.RegisterStructValidation(newLessonStructValidation, NewLesson{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

func typeValidation(fl validator.FieldLevel) bool {
	return IsType(fl.Field().String())
}

// newLessonStructValidation checks EndTime > StartTime. Zero-padded HH:MM strings sort chronologically.
func newLessonStructValidation(sl validator.StructLevel) {
	if nl, ok := sl.Current().Interface().(NewLesson); ok {
		if core.IsHHMM(nl.StartTime) && core.IsHHMM(nl.EndTime) && nl.EndTime <= nl.StartTime {
			sl.ReportError(nl.EndTime, "end_time", "EndTime", endAfterStartTag, "")
		}
	}
}
