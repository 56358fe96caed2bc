package validation

import "reflect"

// Violation is one failed rule on one field.
type Violation struct {
	Field   string
	Tag     string
	Param   string
	Kind    reflect.Kind
	Message string
}

// Rule reports whether value satisfies the rule given its tag parameter.
type Rule func(value reflect.Value, param string) bool

// Validator defines the interface that needs to be implemented by all validation strategies.
type Validator interface {
	ValidateStruct(s any) map[string]string
	Violations(s any) []Violation
	// RegisterRule adds a custom tag. Call it before the first validation.
	// message is formatted with the field name as %[1]s and the tag
	// parameter as %[2]s.
	RegisterRule(tag, message string, rule Rule) error
}
