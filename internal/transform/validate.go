package transform

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/ferdiebergado/snaptools/internal/platform/validation"
	"github.com/mitchellh/mapstructure"
)

// ValidationResult is the pure outcome of checking a request.
type ValidationResult struct {
	OK      bool              `json:"ok"`
	Kind    ErrorKind         `json:"kind,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func (v ValidationResult) Err() error {
	if v.OK {
		return nil
	}
	return &Error{Kind: v.Kind, Message: v.Message, Fields: v.Errors}
}

// Checker decodes request fields into an algorithm's params struct and
// applies its validate tags.
type Checker struct {
	registry  *Registry
	validator validation.Validator
}

func NewChecker(registry *Registry, v validation.Validator) (*Checker, error) {
	if err := RegisterRules(v); err != nil {
		return nil, err
	}

	return &Checker{
		registry:  registry,
		validator: v,
	}, nil
}

// RegisterRules installs the custom tags. A field tagged cost=<selector>
// accepts zero (use the default) or a value the selector allows. A string
// tagged maxbytes=<n> is at most n bytes once UTF-8 encoded.
func RegisterRules(v validation.Validator) error {
	err := v.RegisterRule("cost", "%[1]s is not a selectable value", func(value reflect.Value, param string) bool {
		s, ok := Selector(param)
		if !ok || !value.CanInt() {
			return false
		}
		n := int(value.Int())
		return n == 0 || s.Allows(n)
	})
	if err != nil {
		return err
	}

	return v.RegisterRule("maxbytes", "%[1]s must be at most %[2]s bytes", func(value reflect.Value, param string) bool {
		limit, err := strconv.Atoi(param)
		if err != nil || value.Kind() != reflect.String {
			return false
		}
		return len(value.String()) <= limit
	})
}

func (c *Checker) Validate(req Request, dir Direction) ValidationResult {
	_, err := c.decode(req.Algorithm, dir, req.Fields, req.Options)
	if err != nil {
		return ValidationResult{
			Kind:    err.Kind,
			Message: err.Message,
			Errors:  err.Fields,
		}
	}
	return ValidationResult{OK: true}
}

func (c *Checker) decode(id ID, dir Direction, fields map[string]string, options map[string]any) (any, *Error) {
	alg, err := c.registry.Lookup(id)
	if err != nil {
		return nil, err.(*Error)
	}

	st, err := alg.stage(dir)
	if err != nil {
		return nil, err.(*Error)
	}

	params, derr := c.decodeStage(st, fields, options)
	if derr != nil {
		return nil, derr
	}
	return params, nil
}

func (c *Checker) decodeStage(st *stage, fields map[string]string, options map[string]any) (any, *Error) {
	input := make(map[string]any, len(fields)+len(options))
	for k, v := range options {
		input[k] = v
	}
	for k, v := range fields {
		input[k] = v
	}

	params := st.newParams()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.DecodeHookFuncKind(wholeNumbers),
		Result:           params,
	})
	if err != nil {
		return nil, &Error{Kind: InvalidParameter, Message: "build decoder", Err: err}
	}

	if err := dec.Decode(input); err != nil {
		return nil, &Error{
			Kind:    InvalidParameter,
			Message: "options could not be decoded",
			Fields:  decodeFields(err),
			Err:     err,
		}
	}

	violations := c.validator.Violations(params)
	if len(violations) == 0 {
		return params, nil
	}
	return nil, violationError(violations)
}

// violationError reports the most fundamental kind among violations:
// missing beats length, length beats parameter.
func violationError(violations []validation.Violation) *Error {
	kind := InvalidParameter
	errs := make(map[string]string, len(violations))
	for _, v := range violations {
		if _, seen := errs[v.Field]; !seen {
			errs[v.Field] = v.Message
		}

		switch k := kindOf(v); {
		case k == MissingInput:
			kind = MissingInput
		case k == InvalidLength && kind != MissingInput:
			kind = InvalidLength
		}
	}

	return &Error{
		Kind:    kind,
		Message: kind.Description(),
		Fields:  errs,
	}
}

func kindOf(v validation.Violation) ErrorKind {
	switch v.Tag {
	case "required", "notblank":
		return MissingInput
	case "maxbytes":
		return InvalidLength
	case "min", "max", "len":
		if v.Kind == reflect.String {
			return InvalidLength
		}
	}
	return InvalidParameter
}

// wholeNumbers rejects fractional numbers bound for integer options, which
// mapstructure would otherwise truncate.
func wholeNumbers(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.Float32 && from != reflect.Float64 {
		return data, nil
	}
	switch to {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}

	f := reflect.ValueOf(data).Float()
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%v is not a whole number", data)
	}
	return data, nil
}

// decodeFields extracts the quoted option names from a mapstructure error.
func decodeFields(err error) map[string]string {
	var merr *mapstructure.Error
	if !errors.As(err, &merr) {
		return nil
	}

	fields := make(map[string]string, len(merr.Errors))
	for _, msg := range merr.Errors {
		_, rest, ok := strings.Cut(msg, "'")
		if !ok {
			continue
		}
		name, _, ok := strings.Cut(rest, "'")
		if !ok || name == "" {
			continue
		}
		fields[name] = fmt.Sprintf("%s has an invalid value", name)
	}
	return fields
}
