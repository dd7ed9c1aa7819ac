package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// MaxBodySize is the maximum amount of bytes a request body may consist of
const MaxBodySize = 1 << 20

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errRequestBodyParameterNumberOutOfRange = func(name string, value, min, max int64) *Error {
		comparison := ""
		if value < min {
			comparison = fmt.Sprintf("%d [given] < %d [min]", value, min)
		} else if value > max {
			comparison = fmt.Sprintf("%d [given] > %d [max]", value, max)
		}

		return &Error{
			Type:    "validation.requestBody.parameter.number.outOfRange",
			Message: fmt.Sprintf("The request body parameter '%s' is out of the required range (%s).", name, comparison),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"min":       min,
				"max":       max,
			},
		}
	}
	errRequestBodyParameterNotAllowed = func(name, value string, allowed []string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.notAllowed",
			Message: fmt.Sprintf("The request body parameter '%s' ('%s') must be one of: %s.", name, value, strings.Join(allowed, ", ")),
			Details: map[string]any{
				"parameter": name,
				"value":     value,
				"allowed":   allowed,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Supported field tags are 'required:"true"', 'min', 'max' (integers) and 'enum' (comma-separated strings).
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	body, err := io.ReadAll(io.LimitReader(request.Body, MaxBodySize+1))
	if err != nil {
		return nil, nil, err
	}
	if len(body) > MaxBodySize {
		return nil, []*Error{errRequestBodyInvalidJSON("request body too large")}, nil
	}

	target := new(T)
	if err := json.Unmarshal(body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		}
		return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
	}

	errs, err := validateStruct("", target)
	if err != nil {
		return nil, nil, err
	}
	return target, errs, nil
}

func validateStruct(fieldPrefix string, val any) ([]*Error, error) {
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	typ := ref.Type()

	var errs []*Error

	for i := 0; i < typ.NumField(); i++ {
		// Retrieve the validation requirements
		fieldDef := typ.Field(i)
		if !fieldDef.IsExported() {
			continue
		}
		required := strings.EqualFold(fieldDef.Tag.Get("required"), "true")
		min, err := strconv.ParseInt(fieldDef.Tag.Get("min"), 10, 64)
		if err != nil {
			min = math.MinInt64
		}
		max, err := strconv.ParseInt(fieldDef.Tag.Get("max"), 10, 64)
		if err != nil {
			max = math.MaxInt64
		}
		var allowed []string
		if enum := fieldDef.Tag.Get("enum"); enum != "" {
			allowed = strings.Split(enum, ",")
		}

		fieldName := fieldPrefix + getFieldName(fieldDef)

		// Perform all validations on the field
		field := ref.Field(i)
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				if required {
					errs = append(errs, errRequestBodyParameterMissing(fieldName))
				}
				continue
			}
			field = field.Elem()
		}

		switch {
		case field.CanUint():
			val := int64(field.Uint())
			if val < min || val > max {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, min, max))
			}
		case field.CanInt():
			val := field.Int()
			if val < min || val > max {
				errs = append(errs, errRequestBodyParameterNumberOutOfRange(fieldName, val, min, max))
			}
		case field.Kind() == reflect.String:
			if allowed != nil && !contains(allowed, field.String()) {
				errs = append(errs, errRequestBodyParameterNotAllowed(fieldName, field.String(), allowed))
			}
		case field.Kind() == reflect.Struct && field.Type() != timeType:
			subErrs, err := validateStruct(fieldName+".", field.Interface())
			if err != nil {
				return nil, err
			}
			errs = append(errs, subErrs...)
		}
	}

	return errs, nil
}

var timeType = reflect.TypeOf(time.Time{})

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
