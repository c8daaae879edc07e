package elearnparse

import (
	"errors"
	"fmt"

	"github.com/ternarybob/elearnparse/pkg/validate"
)

// ErrorKind is the closed taxonomy of failures the core can produce, per
// spec §7.
type ErrorKind string

const (
	// KindFileAccess covers backend-level failures: not found, permission
	// denied, I/O, network, or a resource limit exceeded.
	KindFileAccess ErrorKind = "file_access"
	// KindDetection covers the case where no plugin claimed the package, or
	// a probe itself errored.
	KindDetection ErrorKind = "detection"
	// KindManifestParse covers structural failure in XML/INI: malformed
	// syntax, bad encoding, unclosed element, bad number.
	KindManifestParse ErrorKind = "manifest_parse"
	// KindResolution covers reference resolution failures the validator
	// cannot express as an issue, such as a cycle in sequencing IDRef
	// indirection discovered during parse.
	KindResolution ErrorKind = "resolution"
	// KindValidation covers one or more validation issues at ERROR
	// severity, surfaced from the strict-mode parse facade.
	KindValidation ErrorKind = "validation"
)

// ParseError is the single error type returned across the public API
// surface. It always carries a Kind and a free-form diagnostic Metadata
// bag; KindValidation additionally carries the full ValidationResult.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Metadata map[string]any
	Result   *validate.Result // non-nil only for KindValidation
	cause    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *ParseError) Unwrap() error {
	return e.cause
}

// newFileAccessError builds a KindFileAccess ParseError.
func newFileAccessError(op, path string, cause error) *ParseError {
	return &ParseError{
		Kind:    KindFileAccess,
		Message: fmt.Sprintf("%s %s", op, path),
		Metadata: map[string]any{
			"operation": op,
			"path":      path,
		},
		cause: cause,
	}
}

// newDetectionError builds a KindDetection ParseError.
func newDetectionError(reason string, meta map[string]any, cause error) *ParseError {
	return &ParseError{Kind: KindDetection, Message: reason, Metadata: meta, cause: cause}
}

// newManifestParseError builds a KindManifestParse ParseError.
func newManifestParseError(file string, cause error) *ParseError {
	return &ParseError{
		Kind:     KindManifestParse,
		Message:  fmt.Sprintf("failed to parse manifest %s", file),
		Metadata: map[string]any{"file": file},
		cause:    cause,
	}
}

// newValidationError wraps a failing ValidationResult as a ParseError.
func newValidationError(context string, result *validate.Result) *ParseError {
	return &ParseError{
		Kind:     KindValidation,
		Message:  fmt.Sprintf("validation failed: %s", context),
		Metadata: map[string]any{"context": context, "error_count": len(result.Errors())},
		Result:   result,
	}
}

// AsParseError is a convenience wrapper over errors.As for callers that
// don't want to declare the *ParseError local themselves.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	ok := errors.As(err, &pe)
	return pe, ok
}
