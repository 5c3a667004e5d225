package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrFeedUnavailable    = errors.New("feed unavailable")
	ErrUpdateFailed       = errors.New("update failed")
	ErrPublishFailed      = errors.New("publish failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProviderFailure    = errors.New("provider failure")
)

// ValidationKind classifies a rejected input.
type ValidationKind string

const (
	KindMissing          ValidationKind = "missing"
	KindInvalidType      ValidationKind = "invalid_type"
	KindInvalidValue     ValidationKind = "invalid_value"
	KindInvalidParameter ValidationKind = "invalid_parameter"
)

// ValidationError is a client-caused failure. Message is safe to return verbatim.
type ValidationError struct {
	Field   string
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindMissing, Message: field + " is required"}
}

func InvalidType(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalidType, Message: field + " must be a number"}
}

func InvalidValue(field, message string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalidValue, Message: message}
}

func InvalidParameter(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalidParameter, Message: "Invalid " + field + " parameter"}
}

// NotFoundError names the resource that could not be located.
type NotFoundError struct {
	Resource string
	ID       any
}

func NotFound(resource string, id any) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AsValidation extracts a ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

func NotAString(field string) *ValidationError {
	return &ValidationError{Field: field, Kind: KindInvalidType, Message: field + " must be a string"}
}
