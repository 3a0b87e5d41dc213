package record

import "fmt"

// ValidationError signals that a record failed its presence or
// enumeration checks. It is raised before any persistence call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PersistenceError signals that the backing store failed. The unit of
// work has already been rolled back when it is raised.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
