package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNameRequired      = errors.New("name must be non-empty")
	ErrAgeOutOfRange     = fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	ErrTimeOutOfRange    = fmt.Errorf("time must be between %d and %d", FirstHour, LastHour)
	ErrReferenceRequired = errors.New("reference is required")
)

// ValidationError names the entity field that was rejected and why.
// errors.Is matches against Reason.
type ValidationError struct {
	Entity string
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

var validate = validator.New()

// reasons maps struct field names to the rule they enforce.
var reasons = map[string]error{
	"Name":       ErrNameRequired,
	"Age":        ErrAgeOutOfRange,
	"Time":       ErrTimeOutOfRange,
	"CamperID":   ErrReferenceRequired,
	"ActivityID": ErrReferenceRequired,
}

// columns maps struct field names to their wire/column names.
var columns = map[string]string{
	"CamperID":   "camper_id",
	"ActivityID": "activity_id",
}

func (a Activity) Validate() error { return check("activity", a) }
func (c Camper) Validate() error   { return check("camper", c) }
func (s Signup) Validate() error   { return check("signup", s) }

// check runs the struct tag rules and reports the first failing field.
func check(entity string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate %s: %w", entity, err)
	}
	fe := fieldErrs[0]
	reason, ok := reasons[fe.StructField()]
	if !ok {
		reason = fmt.Errorf("failed %q rule", fe.Tag())
	}
	field, ok := columns[fe.StructField()]
	if !ok {
		field = strings.ToLower(fe.StructField())
	}
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}
