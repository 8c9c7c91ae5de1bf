package source

import (
	"fmt"
)

// ErrorKind separates the fatal failures a source can surface.
type ErrorKind string

const (
	// ErrorKindTraversal means the fixture tree could not be enumerated.
	ErrorKindTraversal ErrorKind = "traversal"
	// ErrorKindQuery means a database statement failed.
	ErrorKindQuery ErrorKind = "query"
)

// Error is the fatal error a source yields as the last element of its
// sequence. Per file and per row failures are never reported this way.
type Error struct {
	Kind   ErrorKind
	Source string
	Path   string
	Cause  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("source %s: %s error at %s: %v", e.Source, e.Kind, e.Path, e.Cause)
	}
	return fmt.Sprintf("source %s: %s error: %v", e.Source, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// TraversalError wraps cause as a traversal failure of name at path.
func TraversalError(name, path string, cause error) *Error {
	return &Error{Kind: ErrorKindTraversal, Source: name, Path: path, Cause: cause}
}

// QueryError wraps cause as a statement failure of name.
func QueryError(name string, cause error) *Error {
	return &Error{Kind: ErrorKindQuery, Source: name, Cause: cause}
}
