// Package schema validates untyped data (usually decoded JSON) into typed
// entities. Validation is all-or-nothing and has no side effects.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"unitly-be/internal/entities"
)

const uuidTag = "uuid_canonical"

// Entity names used in ValidationError.Entity.
const (
	EntityBase = "base entity"
	EntityUser = "user"
	EntityUnit = "unit"
)

// Validator checks entity shapes. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator with the entity rules registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation(uuidTag, isCanonicalUUID); err != nil {
		panic(fmt.Sprintf("schema: register %s: %v", uuidTag, err))
	}
	return &Validator{validate: v}
}

// Check runs the entity rules against a value that is already typed, such
// as a row loaded from the database. Violations come back as a
// *ValidationError for entity.
func (v *Validator) Check(entity string, value any) error {
	return v.check(&fieldReader{entity: entity, failed: make(map[string]bool)}, value)
}

// BaseEntity validates id, userId, createdAt and updatedAt.
func (v *Validator) BaseEntity(input any) (*entities.BaseEntity, error) {
	r, err := newReader(EntityBase, input)
	if err != nil {
		return nil, err
	}

	entity := entities.BaseEntity{
		ID:        r.requiredString("id"),
		UserID:    r.requiredString("userId"),
		CreatedAt: r.requiredDate("createdAt"),
		UpdatedAt: r.requiredDate("updatedAt"),
	}
	if err := v.check(r, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// User validates a user; name and email may be absent.
func (v *Validator) User(input any) (*entities.User, error) {
	r, err := newReader(EntityUser, input)
	if err != nil {
		return nil, err
	}

	user := entities.User{
		ID:        r.requiredString("id"),
		CreatedAt: r.requiredDate("createdAt"),
		UpdatedAt: r.requiredDate("updatedAt"),
		Name:      r.optionalString("name"),
		Email:     r.optionalString("email"),
	}
	if err := v.check(r, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Unit validates a unit of measure. approved must be a real boolean.
func (v *Validator) Unit(input any) (*entities.Unit, error) {
	r, err := newReader(EntityUnit, input)
	if err != nil {
		return nil, err
	}

	unit := entities.Unit{
		UCUMCode:  r.requiredString("ucumCode"),
		Title:     r.requiredString("title"),
		Approved:  r.requiredBool("approved"),
		CreatedAt: r.requiredDate("createdAt"),
		UpdatedAt: r.requiredDate("updatedAt"),
	}
	if err := v.check(r, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// check runs the struct tags and merges their violations into r. Fields
// that already failed while being read keep their original violation.
func (v *Validator) check(r *fieldReader, value any) error {
	if err := v.validate.Struct(value); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %s: %w", r.entity, err)
		}
		for _, fe := range fieldErrs {
			r.fail(fe.Field(), codeForTag(fe.Tag()))
		}
	}
	return r.result()
}

var std = New()

// ValidateBaseEntity validates input with the shared Validator.
func ValidateBaseEntity(input any) (*entities.BaseEntity, error) {
	return std.BaseEntity(input)
}

// ValidateUser validates input with the shared Validator.
func ValidateUser(input any) (*entities.User, error) {
	return std.User(input)
}

// ValidateUnit validates input with the shared Validator.
func ValidateUnit(input any) (*entities.Unit, error) {
	return std.Unit(input)
}

// DecodeJSON decodes data into untyped values, keeping numbers as
// json.Number so epoch timestamps survive without float rounding.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to decode JSON: trailing data")
	}
	return out, nil
}

func isCanonicalUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
