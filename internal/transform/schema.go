package transform

import (
	"reflect"
	"strconv"
	"strings"
)

// Input widgets a surface can render.
const (
	InputText     = "text"
	InputTextarea = "textarea"
	InputSecret   = "secret"
	InputNumber   = "number"
	InputSelect   = "select"
)

// Field describes one input of an algorithm, derived from its params struct.
type Field struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Input     string   `json:"input"`
	Required  bool     `json:"required"`
	MaxLength int      `json:"max_length,omitempty"`
	MaxBytes  int      `json:"max_bytes,omitempty"`
	Cost      string   `json:"cost,omitempty"`
	Choices   []string `json:"choices,omitempty"`
}

func schemaOf[P any]() []Field {
	t := reflect.TypeFor[P]()
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]Field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}

		f := Field{
			Name:  name,
			Label: sf.Tag.Get("label"),
			Input: sf.Tag.Get("input"),
		}
		if f.Label == "" {
			f.Label = sf.Name
		}

		for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
			tag, param, _ := strings.Cut(rule, "=")
			switch tag {
			case "required", "notblank":
				f.Required = true
			case "max":
				if sf.Type.Kind() == reflect.String {
					f.MaxLength, _ = strconv.Atoi(param)
				}
			case "maxbytes":
				f.MaxBytes, _ = strconv.Atoi(param)
			case "cost":
				f.Cost = param
				f.Input = InputSelect
				if s, ok := Selector(param); ok {
					for _, c := range s.Values() {
						f.Choices = append(f.Choices, c.String())
					}
				}
			case "oneof":
				f.Input = InputSelect
				f.Choices = strings.Fields(param)
			}
		}

		if f.Input == "" {
			f.Input = InputText
			if sf.Type.Kind() == reflect.Int {
				f.Input = InputNumber
			}
		}
		fields = append(fields, f)
	}
	return fields
}
