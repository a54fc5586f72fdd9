package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a user input that failed a field rule. The
// operation is aborted before any write reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a referenced id that does not exist.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// StorageError wraps an open/read/write failure at the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ReportError wraps a document generation failure.
type ReportError struct {
	Op  string
	Err error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("report: %s: %v", e.Op, e.Err)
}

func (e *ReportError) Unwrap() error { return e.Err }

// AsValidation unwraps err into a ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
