package docfill

import (
	"fmt"
)

// TemplateError represents a recoverable defect in the template markup,
// such as an unterminated loop or conditional marker. The engine never
// fails hard on these; it records them and continues with the heuristic
// recovery described in the scanner.
type TemplateError struct {
	Message string
	Marker  string
	Offset  int
}

func (e *TemplateError) Error() string {
	if e.Marker != "" && e.Offset >= 0 {
		return fmt.Sprintf("template error at offset %d near '%s': %s", e.Offset, e.Marker, e.Message)
	}
	if e.Marker != "" {
		return fmt.Sprintf("template error near '%s': %s", e.Marker, e.Message)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

// NewTemplateError creates a new template error with position information
func NewTemplateError(message, marker string, offset int) error {
	return &TemplateError{
		Message: message,
		Marker:  marker,
		Offset:  offset,
	}
}

// RemoteError represents a failure of the remote document API during any
// phase of a fill. It aborts the fill and propagates to the caller.
type RemoteError struct {
	Op    string
	DocID string
	Cause error
}

func (e *RemoteError) Error() string {
	if e.DocID != "" {
		return fmt.Sprintf("remote document error during %s of '%s': %v", e.Op, e.DocID, e.Cause)
	}
	return fmt.Sprintf("remote document error during %s: %v", e.Op, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// NewRemoteError creates a new remote document error
func NewRemoteError(op, docID string, cause error) error {
	return &RemoteError{
		Op:    op,
		DocID: docID,
		Cause: cause,
	}
}

// CleanupError represents a failure to delete a disposable working copy.
// It is reported informationally and must never mask the primary result
// of the fill or export step that preceded it.
type CleanupError struct {
	DocID string
	Cause error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup error deleting working copy '%s': %v", e.DocID, e.Cause)
}

func (e *CleanupError) Unwrap() error {
	return e.Cause
}

// NewCleanupError creates a new cleanup error
func NewCleanupError(docID string, cause error) error {
	return &CleanupError{
		DocID: docID,
		Cause: cause,
	}
}

// IsTemplateError checks if an error is a template error
func IsTemplateError(err error) bool {
	_, ok := err.(*TemplateError)
	return ok
}

// IsRemoteError checks if an error is a remote document error
func IsRemoteError(err error) bool {
	_, ok := err.(*RemoteError)
	return ok
}

// IsCleanupError checks if an error is a cleanup error
func IsCleanupError(err error) bool {
	_, ok := err.(*CleanupError)
	return ok
}
