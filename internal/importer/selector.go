// Package importer decides between the API and manual profile import paths
// and defines the shared result and error contract between them.
package importer

import "github.com/Sof1ane/aipply/internal/profile"

// Source identifies which import path produced (or will produce) a profile.
// The two paths are mutually exclusive per session.
type Source string

const (
	// SourceAPI imports the profile through the LinkedIn OAuth flow.
	SourceAPI Source = "api"
	// SourceManual collects the profile through the prompt wizard.
	SourceManual Source = "manual"
	// SourceAbort ends the session without importing anything.
	SourceAbort Source = "abort"
)

// Choice is the user's menu selection before credential checks are applied.
type Choice int

const (
	// ChoiceAPI requests the LinkedIn API import.
	ChoiceAPI Choice = iota
	// ChoiceManual requests the manual prompt wizard.
	ChoiceManual
	// ChoiceAbort cancels the import session.
	ChoiceAbort
)

// Selection is the selector's decision plus an optional non-fatal warning to
// surface to the user.
type Selection struct {
	Source  Source
	Warning string
}

// Result is the tagged outcome of one import session. Exactly one importer
// fills the profile; feeding both paths through this single variant avoids
// partial writes on the profile record.
type Result struct {
	Source  Source
	Profile *profile.Profile
}

// Select maps the user's menu choice and credential availability to an import
// source. The API path is never selected without credentials: the selector
// falls back to manual entry and reports a configuration warning instead.
func Select(choice Choice, hasCredentials bool) Selection {
	switch choice {
	case ChoiceAbort:
		return Selection{Source: SourceAbort}
	case ChoiceAPI:
		if !hasCredentials {
			return Selection{
				Source:  SourceManual,
				Warning: "LinkedIn API credentials are not configured (set LINKEDIN_CLIENT_ID and LINKEDIN_CLIENT_SECRET); falling back to manual entry",
			}
		}
		return Selection{Source: SourceAPI}
	default:
		return Selection{Source: SourceManual}
	}
}

// Fallback reports whether a failed API import should be retried on the
// manual path. Every classified failure is recoverable except an explicit
// user abort.
func Fallback(err error) bool {
	if err == nil {
		return false
	}
	return Kind(err) != Aborted
}
