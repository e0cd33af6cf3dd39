package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// Violation codes reported in FieldError.Code.
const (
	CodeMissing      = "missing"
	CodeInvalidType  = "invalid_type"
	CodeInvalidUUID  = "invalid_uuid"
	CodeInvalidEmail = "invalid_email"
	CodeEmpty        = "empty"
	CodeInvalidDate  = "invalid_date"
	CodeInvalid      = "invalid"
)

// FieldError describes one field that failed its constraint.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError is returned when an input does not match an entity shape.
// It always lists every failing field.
type ValidationError struct {
	Entity string       `json:"entity"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Field returns the violation recorded for the named field, if any.
func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

var messages = map[string]string{
	CodeMissing:      "missing required field",
	CodeInvalidType:  "wrong type",
	CodeInvalidUUID:  "not a valid UUID",
	CodeInvalidEmail: "not a valid email",
	CodeEmpty:        "must not be empty",
	CodeInvalidDate:  "not a valid date",
	CodeInvalid:      "invalid value",
}

// codeForTag maps a validator tag to the violation code it represents.
func codeForTag(tag string) string {
	switch tag {
	case "required":
		return CodeEmpty
	case uuidTag:
		return CodeInvalidUUID
	case "email":
		return CodeInvalidEmail
	default:
		return CodeInvalid
	}
}
