// Package errors defines the stable error codes the analyzer reports.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// InvalidInput indicates the component set was nil or malformed
	InvalidInput ErrorCode = "INVALID_INPUT"
	// EmptyComponentSet indicates no components were provided
	EmptyComponentSet ErrorCode = "EMPTY_COMPONENT_SET"
	// MetadataParseFailed indicates the metadata document could not be decoded
	MetadataParseFailed ErrorCode = "METADATA_PARSE_FAILED"
	// MetadataUnsupportedFormat indicates an unrecognized metadata file extension
	MetadataUnsupportedFormat ErrorCode = "METADATA_UNSUPPORTED_FORMAT"
	// DetectionAborted indicates a detector sub-pass panicked and was skipped
	DetectionAborted ErrorCode = "DETECTION_ABORTED"
	// StoreUnavailable indicates the run-history database could not be opened
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// RunNotFound indicates a stored run id does not exist
	RunNotFound ErrorCode = "RUN_NOT_FOUND"
	// InternalError indicates an unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// AnalysisError represents an analyzer error with a stable code
type AnalysisError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new AnalysisError
func New(code ErrorCode, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *AnalysisError) WithDetails(details interface{}) *AnalysisError {
	e.Details = details
	return e
}

// IsFatal reports whether the code invalidates the whole run. Everything
// else degrades to a skipped sub-pass.
func (e *AnalysisError) IsFatal() bool {
	switch e.Code {
	case InvalidInput, EmptyComponentSet, MetadataParseFailed, MetadataUnsupportedFormat:
		return true
	default:
		return false
	}
}
