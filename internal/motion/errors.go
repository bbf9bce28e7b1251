package motion

import (
	"errors"
	"fmt"
)

// ErrorKind classifies scan and extraction failures.
type ErrorKind int

const (
	ErrorUnknown ErrorKind = iota
	ErrorNotMotionPhoto
	ErrorInvalidBoxStructure
	ErrorTruncatedVideo
	ErrorMalformedNesting
	ErrorIOFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorNotMotionPhoto:
		return "not_motion_photo"
	case ErrorInvalidBoxStructure:
		return "invalid_box_structure"
	case ErrorTruncatedVideo:
		return "truncated_video"
	case ErrorMalformedNesting:
		return "malformed_nesting"
	case ErrorIOFailure:
		return "io_failure"
	default:
		return "unknown"
	}
}

// ScanError is the failure type surfaced by the walkers, the container
// scanner and the extraction pipeline. Offset is the buffer position
// the failure was detected at, or -1 when no position applies.
type ScanError struct {
	Kind    ErrorKind
	Offset  int64
	Message string
	Cause   error
}

func (e *ScanError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("[%s] %s (offset %d)", e.Kind, e.Message, e.Offset)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *ScanError) Unwrap() error {
	return e.Cause
}

func scanErrorf(kind ErrorKind, offset int64, format string, args ...any) *ScanError {
	return &ScanError{Kind: kind, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

func ioError(message string, cause error) *ScanError {
	return &ScanError{Kind: ErrorIOFailure, Offset: -1, Message: message, Cause: cause}
}

// KindOf returns the ErrorKind carried by err, or ErrorUnknown when err
// is not a ScanError.
func KindOf(err error) ErrorKind {
	var scanErr *ScanError
	if errors.As(err, &scanErr) {
		return scanErr.Kind
	}
	return ErrorUnknown
}
