package env

import (
	"encoding"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"strconv"
)

var textUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

// OverrideStruct sets every field tagged env:"NAME" from the environment
// variable NAME when it is set. Nested structs and struct pointers are
// walked, and nil pointers are allocated on the way.
func OverrideStruct(v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("override struct: expects a non-nil pointer to a struct, got %T", v)
	}

	val = val.Elem()
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("override struct: expects a pointer to a struct, got %T (%s)", v, val.Kind())
	}

	return overrideFields(val)
}

func overrideFields(val reflect.Value) error {
	typ := val.Type()

	for i := range typ.NumField() {
		field := typ.Field(i)
		fieldValue := val.Field(i)
		if !field.IsExported() {
			continue
		}

		envVarName := field.Tag.Get("env")
		if envVarName == "" {
			switch {
			case fieldValue.Kind() == reflect.Struct:
				if err := overrideFields(fieldValue); err != nil {
					return fmt.Errorf("nested struct %s: %w", field.Name, err)
				}
			case fieldValue.Kind() == reflect.Pointer && field.Type.Elem().Kind() == reflect.Struct:
				if fieldValue.IsNil() {
					fieldValue.Set(reflect.New(field.Type.Elem()))
				}
				if err := overrideFields(fieldValue.Elem()); err != nil {
					return fmt.Errorf("nested pointer struct %s: %w", field.Name, err)
				}
			}
			continue
		}

		envVarValue, ok := os.LookupEnv(envVarName)
		if !ok || envVarValue == "" {
			slog.Debug("Environment variable not set for field", "env", envVarName, "field", field.Name)
			continue
		}

		if err := setField(fieldValue, envVarValue); err != nil {
			return fmt.Errorf("field %s from env var %s: %w", field.Name, envVarName, err)
		}
	}
	return nil
}

func setField(fieldValue reflect.Value, raw string) error {
	if fieldValue.CanAddr() && fieldValue.Addr().Type().Implements(textUnmarshaler) {
		u, _ := fieldValue.Addr().Interface().(encoding.TextUnmarshaler)
		return u.UnmarshalText([]byte(raw))
	}

	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse int: %w", err)
		}
		fieldValue.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, fieldValue.Type().Bits())
		if err != nil {
			return fmt.Errorf("parse uint: %w", err)
		}
		fieldValue.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parse bool: %w", err)
		}
		fieldValue.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", fieldValue.Kind())
	}
	return nil
}

// Env returns the value of the environment variable named by the key.
// If the variable is not present in the environment, it returns the provided fallback value.
func Env(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
