package framegraph

import "errors"

// Sentinel errors for every contract breach the graph can detect. They are
// always wrapped with context via fmt.Errorf("...: %w", ...), so callers
// match them with errors.Is.
var (
	// ErrInvalidHandle marks a read or write of a stale handle, one whose
	// entry has been renamed since the handle was obtained.
	ErrInvalidHandle = errors.New("stale resource handle")

	// ErrUndeclaredAccess marks a PassResources lookup of a node the
	// executing pass never declared.
	ErrUndeclaredAccess = errors.New("resource not declared by pass")

	// ErrWrongKind marks a typed accessor invoked with a resource kind
	// other than the one the entry stores.
	ErrWrongKind = errors.New("resource kind mismatch")

	// ErrWrongPhase marks a declaration after compile, a double compile,
	// or a double execute.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
)
