// Package errors defines stable error codes and the coded error type used
// across marksweep.
package errors

import (
	stderrors "errors"
	"fmt"
)

// As and Is re-export the standard helpers so callers importing this
// package do not need a second errors import.
func As(err error, target any) bool { return stderrors.As(err, target) }

func Is(err, target error) bool { return stderrors.Is(err, target) }

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// MarkerInvalid indicates a malformed task marker (missing path, bad line number)
	MarkerInvalid ErrorCode = "MARKER_INVALID"
	// EvidenceInvalid indicates evidence constructed with an out-of-range or NaN weight
	EvidenceInvalid ErrorCode = "EVIDENCE_INVALID"
	// ContextUnavailable indicates file context could not be read for a marker
	ContextUnavailable ErrorCode = "CONTEXT_UNAVAILABLE"
	// HistoryUnavailable indicates the version-history provider is not usable
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// RegistryCorrupt indicates the feature registry CSV could not be parsed
	RegistryCorrupt ErrorCode = "REGISTRY_CORRUPT"
	// ConfigInvalid indicates invalid configuration
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// RulesInvalid indicates the rules file could not be parsed
	RulesInvalid ErrorCode = "RULES_INVALID"
	// Timeout indicates an external call timed out
	Timeout ErrorCode = "TIMEOUT"
	// GitHubUnavailable indicates the GitHub API rejected or refused a request
	GitHubUnavailable ErrorCode = "GITHUB_UNAVAILABLE"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// OpenDocs suggests opening documentation
	OpenDocs FixActionType = "open-docs"
	// SetEnv suggests setting an environment variable
	SetEnv FixActionType = "set-env"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type"`
	Command     string        `json:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
}

// SweepError represents a marksweep error with code, message, and suggestions
type SweepError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new SweepError
func New(code ErrorCode, message string, cause error) *SweepError {
	return &SweepError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// Error implements the error interface
func (e *SweepError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *SweepError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *SweepError) WithDetails(details interface{}) *SweepError {
	e.Details = details
	return e
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	HistoryUnavailable: {
		{
			Type:        RunCommand,
			Command:     "git rev-parse --git-dir",
			Safe:        true,
			Description: "Check that the scan root is inside a git repository",
		},
	},
	RegistryCorrupt: {
		{
			Type:        RunCommand,
			Command:     "marksweep registry validate",
			Safe:        true,
			Description: "Report the offending registry rows",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "marksweep config show",
			Safe:        true,
			Description: "Print the effective configuration with defaults applied",
		},
	},
	GitHubUnavailable: {
		{
			Type:        SetEnv,
			Command:     "export MARKSWEEP_GITHUB_TOKEN=<token>",
			Description: "Provide a GitHub token with repo scope",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
