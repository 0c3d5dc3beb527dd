package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an ingestion did not commit.
type ErrorKind string

const (
	DocumentUnreadable  ErrorKind = "DocumentUnreadable"
	DocumentFetchFailed ErrorKind = "DocumentFetchFailed"
	ProfileWriteFailed  ErrorKind = "ProfileWriteFailed"
	ProfileNotFound     ErrorKind = "ProfileNotFound"
)

type IngestError struct {
	Kind ErrorKind
	Err  error
}

func (e *IngestError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *IngestError) Unwrap() error {
	return e.Err
}

func newIngestError(kind ErrorKind, err error) *IngestError {
	return &IngestError{Kind: kind, Err: err}
}

// KindOf returns the kind of an *IngestError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return "", false
}
