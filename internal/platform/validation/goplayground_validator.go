package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type goPlaygroundValidator struct {
	v        *validator.Validate
	messages map[string]string
}

var _ Validator = (*goPlaygroundValidator)(nil)

func NewGoPlaygroundValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// register function to get tag name from json tags.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank ships with the library but is not registered by default.
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank: %v", err))
	}

	return &goPlaygroundValidator{
		v:        v,
		messages: make(map[string]string),
	}
}

func (g *goPlaygroundValidator) ValidateStruct(s any) map[string]string {
	violations := g.Violations(s)
	if len(violations) == 0 {
		return nil
	}

	errMap := make(map[string]string, len(violations))
	for _, v := range violations {
		if _, seen := errMap[v.Field]; !seen {
			errMap[v.Field] = v.Message
		}
	}
	return errMap
}

func (g *goPlaygroundValidator) Violations(s any) []Violation {
	err := g.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return []Violation{{Tag: "struct", Message: err.Error()}}
	}

	violations := make([]Violation, 0, len(valErrs))
	for _, e := range valErrs {
		violations = append(violations, Violation{
			Field:   e.Field(),
			Tag:     e.Tag(),
			Param:   e.Param(),
			Kind:    e.Kind(),
			Message: g.validationMessage(e),
		})
	}
	return violations
}

func (g *goPlaygroundValidator) RegisterRule(tag, message string, rule Rule) error {
	if err := g.v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return rule(fl.Field(), fl.Param())
	}); err != nil {
		return fmt.Errorf("register rule %s: %w", tag, err)
	}

	g.messages[tag] = message
	return nil
}

func (g *goPlaygroundValidator) validationMessage(e validator.FieldError) string {
	if msg, ok := g.messages[e.Tag()]; ok {
		return fmt.Sprintf(msg, e.Field(), e.Param())
	}

	unit := ""
	if e.Kind() == reflect.String {
		unit = " characters long"
	}

	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", e.Field(), e.Param(), unit)
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", e.Field(), e.Param(), unit)
	case "len":
		return fmt.Sprintf("%s must be exactly %s%s", e.Field(), e.Param(), unit)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a number", e.Field())
	case "base64":
		return fmt.Sprintf("%s must be valid base64", e.Field())
	case "json":
		return fmt.Sprintf("%s must be valid JSON", e.Field())
	case "jwt":
		return fmt.Sprintf("%s must be a JSON Web Token", e.Field())
	case "hexadecimal":
		return fmt.Sprintf("%s must be hexadecimal", e.Field())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
