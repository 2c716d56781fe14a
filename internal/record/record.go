// Package record holds the field rules shared by the prescription and
// visual acuity records. A Rule pairs a validator tag with the message
// reported when a value breaks it, so every setter checks its field through
// the same entry point.
package record

import (
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/hpungsan/optom/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Validated is implemented by every domain record.
type Validated interface {
	Validate() error
}

// Check validates v. A nil record is valid.
func Check(v Validated) error {
	if v == nil {
		return nil
	}
	return v.Validate()
}

// Rule is a single field invariant.
type Rule struct {
	// Tag is a go-playground/validator tag, e.g. "gte=0,lte=180".
	Tag string

	// Message is the exact text reported on failure.
	Message string
}

// Check returns a validation error carrying value when value breaks the rule.
func (r Rule) Check(value any) error {
	if err := validate.Var(value, r.Tag); err != nil {
		return errors.NewValidation(value, r.Message)
	}
	return nil
}

// CheckAll runs each check in order and returns the first failure.
func CheckAll(checks ...func() error) error {
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}
