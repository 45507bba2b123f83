package domain

import "fmt"

// StorageError wraps any failure coming out of the persistence engine.
// The store adapter performs no retries; callers decide what to do.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
