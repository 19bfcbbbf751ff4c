package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"alertcast/internal/repositories/interfaces"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindDelivery   ErrorKind = "delivery"
	KindDirectory  ErrorKind = "directory"
)

// ServiceError carries the kind of failure so the HTTP layer can map it
// without inspecting messages. Compare with errors.Is against the Err*
// sentinels below.
type ServiceError struct {
	Kind    ErrorKind
	Op      string
	Details map[string]string
	Err     error
}

var (
	ErrValidation = &ServiceError{Kind: KindValidation}
	ErrNotFound   = &ServiceError{Kind: KindNotFound}
	ErrDelivery   = &ServiceError{Kind: KindDelivery}
	ErrDirectory  = &ServiceError{Kind: KindDirectory}
)

func (e *ServiceError) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "; %s: %s", k, e.Details[k])
		}
	}
	return b.String()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches any ServiceError of the same kind when target is one of the
// bare sentinels.
func (e *ServiceError) Is(target error) bool {
	t, ok := target.(*ServiceError)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first ServiceError in err's chain, or an
// empty kind.
func KindOf(err error) ErrorKind {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind
	}
	return ""
}

func newValidationError(op string, details map[string]string) error {
	return &ServiceError{Kind: KindValidation, Op: op, Details: details}
}

func newDeliveryError(op string, err error) error {
	return &ServiceError{Kind: KindDelivery, Op: op, Err: err}
}

// storeError classifies a repository error.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		return &ServiceError{Kind: KindNotFound, Op: op, Err: err}
	case errors.Is(err, interfaces.ErrInvalidID):
		return &ServiceError{Kind: KindValidation, Op: op, Err: err}
	default:
		return &ServiceError{Kind: KindDirectory, Op: op, Err: err}
	}
}

// requireFields returns a validation error listing every empty field.
func requireFields(op string, fields map[string]string) error {
	details := map[string]string{}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			details[name] = "is required"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return newValidationError(op, details)
}
