package feasibility

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names so callers can find the offending key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}); err != nil {
		panic(fmt.Sprintf("register finite validation: %v", err))
	}

	return v
}

func validateInput(in ScenarioInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	// First failing field wins; struct order puts required costs first.
	fe := verrs[0]
	return &InputError{
		Field:  fe.Field(),
		Value:  fe.Value(),
		Reason: reasonFor(fe.Tag()),
	}
}

func reasonFor(tag string) string {
	switch tag {
	case "finite":
		return "must be a finite number"
	case "gt":
		return "must be greater than 0"
	default:
		return "failed " + tag
	}
}
