package util

import (
	"strings"
)

// -----------------------------------------------------------------------------

type wrappedError struct {
	kind  error
	cause error
}

// -----------------------------------------------------------------------------

// WrapError creates a new error that carries both a sentinel kind and the
// underlying cause. errors.Is matches either of them.
func WrapError(kind error, cause error) error {
	if cause == nil {
		return kind
	}
	return &wrappedError{
		kind:  kind,
		cause: cause,
	}
}

// Error returns a string representation of the error.
func (w *wrappedError) Error() string {
	sb := strings.Builder{}
	_, _ = sb.WriteString(w.kind.Error())
	_, _ = sb.WriteString(" [err=")
	_, _ = sb.WriteString(w.cause.Error())
	_, _ = sb.WriteString("]")
	return sb.String()
}

// Unwrap returns the sentinel kind and the underlying cause.
func (w *wrappedError) Unwrap() []error {
	return []error{w.kind, w.cause}
}
