package nbappend

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the notebook path does not exist.
var ErrNotFound = errors.New("notebook not found")

// ErrRead indicates the notebook exists but could not be read.
var ErrRead = errors.New("cannot read notebook")

// ErrParse indicates the notebook is not well-formed or lacks a cells list.
var ErrParse = errors.New("invalid notebook document")

// ErrTemplate indicates the cell template could not be loaded or built.
var ErrTemplate = errors.New("invalid cell template")

// ErrWrite indicates the updated notebook could not be persisted.
var ErrWrite = errors.New("cannot write notebook")

// NotebookError represents a failure of one append run.
// It matches both its Kind and its cause with errors.Is.
type NotebookError struct {
	Path string
	Kind error // one of ErrNotFound, ErrRead, ErrParse, ErrTemplate, ErrWrite
	Err  error
}

func (e *NotebookError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *NotebookError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewNotebookError creates a new NotebookError.
func NewNotebookError(path string, kind, err error) *NotebookError {
	return &NotebookError{
		Path: path,
		Kind: kind,
		Err:  err,
	}
}
