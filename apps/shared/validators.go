// Package shared holds the setup common to the api server & the admin cli.
package shared

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/mocnepiwko/uni-diary/core"
	"github.com/mocnepiwko/uni-diary/core/homework"
	"github.com/mocnepiwko/uni-diary/core/lesson"
	"github.com/mocnepiwko/uni-diary/core/user"
)

// NewValidator instantiates the validator with the global & every domain's custom validators registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	lesson.InitValidators(validate, translator)
	homework.InitValidators(validate, translator)
	return validate, translator
}
