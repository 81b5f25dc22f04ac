package storage

import "errors"

var (
	// ErrConnectionUnavailable signals that the workbook resource or one of
	// its worksheets could not be reached: credentials missing or invalid,
	// resource not found, or worksheet not found. Callers treat it as
	// "operation unavailable" and skip writes; it is never fatal.
	ErrConnectionUnavailable = errors.New("storage: connection unavailable")

	// ErrKeyNotFound signals that a delete was requested for a value absent
	// from the lookup column. No mutation was performed.
	ErrKeyNotFound = errors.New("storage: key not found")
)
