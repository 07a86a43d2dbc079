package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for empty names, texts or search strings.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStorageFailure matches every *StorageError.
	ErrStorageFailure = errors.New("storage failure")
)

// StorageError reports a failed backend call together with the operation and
// the input that triggered it. The backend error is kept for Unwrap but not
// printed.
type StorageError struct {
	Op    string
	Input string
	Err   error
}

func (e *StorageError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrStorageFailure)
	}
	return fmt.Sprintf("%s %q: %s", e.Op, e.Input, ErrStorageFailure)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrStorageFailure) match.
func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }

func storageFailure(op, input string, err error) error {
	return &StorageError{Op: op, Input: input, Err: err}
}
