package validations

import (
	"github.com/go-playground/validator/v10"
	"regexp"
)

type ValidationError struct {
	Message string            `json:"message"`
	Details map[string]string `json:"data"`
}

func (e ValidationError) Error() string {
	return e.Message
}

var patPattern = regexp.MustCompile(`^tr_pat_[0-9A-Za-z]{20}$`)

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("pat", func(fl validator.FieldLevel) bool {
		return patPattern.MatchString(fl.Field().String())
	})
	return validate
}

// TokenIDValidator checks a record id taken from the path. Ids are cuids.
type TokenIDValidator struct {
	ID string `json:"id" validate:"required,alphanum,min=20,max=32"`
}

func (v TokenIDValidator) Validate() error {
	validate := newValidator()
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

type BearerTokenValidator struct {
	Token string `json:"token" validate:"required,pat"`
}

func (v BearerTokenValidator) Validate() error {
	validate := newValidator()
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}

type ExampleIDValidator struct {
	ID string `json:"id" validate:"required,max=64,excludesall=/?#"`
}

func (v ExampleIDValidator) Validate() error {
	validate := newValidator()
	if err := validate.Struct(v); err != nil {
		return err
	}
	return nil
}
