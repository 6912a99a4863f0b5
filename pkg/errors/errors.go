// Package errors defines the sentinel error taxonomy used across the
// analysis pipeline (spec §7) plus a wrapping AppError that carries the
// component tag and severity a Diagnostic needs.
package errors

import (
	"errors"
	"fmt"

	"github.com/themaverik/codebase-workflow-analyzer/pkg/types"
)

// Sentinel errors, one per input/analyzer-error category in §7.
var (
	ErrUnreadablePath        = errors.New("unreadable project path")
	ErrMissingManifest       = errors.New("no recognizable manifest found")
	ErrParseFailed           = errors.New("source file failed to parse")
	ErrAnalyzerFault         = errors.New("analyzer invariant violation")
	ErrLLMUnavailable        = errors.New("language-model service unavailable")
	ErrSanitizationViolation = errors.New("excerpt exceeded cap after sanitization")
	ErrCacheMiss             = errors.New("cache miss")
)

// AppError wraps a pipeline error with the component tag and severity a
// Diagnostic entry needs, following the teacher's pkg/common/errors
// AppError pattern (there mapped to HTTP status codes; here mapped to
// diagnostic severity since this package has no HTTP surface of its own).
type AppError struct {
	Component string
	Severity  types.DiagnosticSeverity
	Message   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Component, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// New constructs an AppError.
func New(component string, severity types.DiagnosticSeverity, message string, err error) *AppError {
	return &AppError{Component: component, Severity: severity, Message: message, Err: err}
}

// Classify maps a raw error onto an AppError with a sensible severity,
// mirroring the taxonomy in §7: input errors abort with no partial result
// (severity error), parse/analyzer errors degrade the owning tier
// (severity warning), everything unrecognized defaults to error.
func Classify(component string, err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, ErrUnreadablePath), errors.Is(err, ErrMissingManifest):
		return New(component, types.DiagError, "input error", err)
	case errors.Is(err, ErrParseFailed):
		return New(component, types.DiagWarning, "parse error", err)
	case errors.Is(err, ErrAnalyzerFault):
		return New(component, types.DiagWarning, "analyzer error", err)
	case errors.Is(err, ErrLLMUnavailable):
		return New(component, types.DiagWarning, "llm-grounding unavailable", err)
	case errors.Is(err, ErrSanitizationViolation):
		return New(component, types.DiagWarning, "sanitization violation", err)
	case errors.Is(err, ErrCacheMiss):
		return New(component, types.DiagInfo, "cache miss", err)
	default:
		return New(component, types.DiagError, "unclassified error", err)
	}
}
