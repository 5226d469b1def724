package importer

import (
	"errors"
	"fmt"

	"github.com/Sof1ane/aipply/internal/profile"
)

// FailureKind classifies import failures for diagnostics and fallback
// decisions. Every kind is non-fatal: the selector offers the manual path
// instead of terminating the program.
type FailureKind string

const (
	// ConfigMissing means the LinkedIn credentials are absent or malformed.
	ConfigMissing FailureKind = "config_missing"
	// AuthDenied means the user rejected the consent screen.
	AuthDenied FailureKind = "auth_denied"
	// AuthTimeout means the redirect was never received within the bounded wait.
	AuthTimeout FailureKind = "auth_timeout"
	// NetworkFailure means a transport error talking to the provider.
	NetworkFailure FailureKind = "network_failure"
	// ValidationFailure means the collected profile violates a record
	// invariant. Manual entry recovers by re-prompting.
	ValidationFailure FailureKind = "validation_failure"
	// Aborted means the user cancelled the import (e.g. interrupt signal).
	Aborted FailureKind = "aborted"
)

// ImportError carries the failure kind plus the stage that failed, so the
// user can decide whether to retry the same path or switch paths.
type ImportError struct {
	Kind    FailureKind
	Stage   string
	Message string
	Cause   error
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import failed at %s (%s): %s: %v", e.Stage, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("import failed at %s (%s): %s", e.Stage, e.Kind, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// Kind extracts the failure kind from an error chain. Unclassified errors
// are reported as NetworkFailure, the broadest non-fatal category.
func Kind(err error) FailureKind {
	var ie *ImportError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	var ve *profile.ValidationError
	if errors.As(err, &ve) {
		return ValidationFailure
	}
	return NetworkFailure
}
