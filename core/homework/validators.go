package homework

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mocnepiwko/uni-diary/core"
)

var (
	deadlineTag  = "deadline"
	deadlineText = "deadline must be a date (YYYY-MM-DD)"
)

// InitValidators registers the homework validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(deadlineTag, deadlineValidation)
	core.RegisterCustomTranslation(validate, translator, deadlineTag, deadlineText)
}

func deadlineValidation(fl validator.FieldLevel) bool {
	_, ok := ParseDeadline(fl.Field().String())
	return ok
}
