package httperr

import (
	cr "github.com/cockroachdb/errors"
)

const CodePersistence = "persistence_error"

// ErrPersistence marks storage-layer failures. Only these may be retried.
var ErrPersistence = cr.New(CodePersistence)

func Persistence(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Mark(cr.Wrap(err, msg), ErrPersistence)
}

func IsPersistence(err error) bool {
	return cr.Is(err, ErrPersistence)
}
