package records

import "fmt"

// StorageError reports that the store could not be opened, migrated or seeded.
// It is not recoverable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// QueryError carries the engine diagnostic for SQL that could not be executed.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
