package utils

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Kapooral/services-app-server-sub002/internal/shared/biztime"
	"github.com/Kapooral/services-app-server-sub002/internal/shared/errors"
)

// HH:MM or HH:MM:SS; 24:00 closes the day.
var timeOfDayRegex = regexp.MustCompile(`^(?:(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?|24:00(?::00)?)$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]validator.Func{
		"timeofday": func(fl validator.FieldLevel) bool {
			return timeOfDayRegex.MatchString(fl.Field().String())
		},
		"date": func(fl validator.FieldLevel) bool {
			_, err := biztime.ParseDate(fl.Field().String())
			return err == nil
		},
		"rrule": func(fl validator.FieldLevel) bool {
			return strings.Contains(strings.ToUpper(fl.Field().String()), "FREQ=")
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("register %s validator: %v", tag, err))
		}
	}
	return v
}

// jsonFieldName reports fields under their JSON name so messages match the
// request body the caller sent.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// ValidateStruct runs the validate tags of s and folds every failure into a
// single validation AppError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.NewValidationError("Validation failed", err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return errors.NewValidationError("Validation failed", strings.Join(msgs, "; "))
}

var fixedMessages = map[string]string{
	"required":  "is required",
	"timeofday": "must be a time of day formatted HH:MM or HH:MM:SS",
	"date":      "must be a date formatted YYYY-MM-DD",
	"rrule":     "must be a recurrence rule declaring FREQ",
}

func describeFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	if msg, ok := fixedMessages[fe.Tag()]; ok {
		return field + " " + msg
	}

	switch fe.Tag() {
	case "min", "max":
		bound := "at least"
		if fe.Tag() == "max" {
			bound = "at most"
		}
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be %s %s characters long", field, bound, param)
		case reflect.Slice:
			return fmt.Sprintf("%s must contain %s %s items", field, bound, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, bound, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	}
	return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
}
