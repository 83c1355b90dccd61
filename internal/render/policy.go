package render

import (
	"fmt"
	"strings"
)

// FailureMode says whether a failed load is visible to the visitor.
type FailureMode int

const (
	// Default selects the renderer's own mode.
	Default FailureMode = iota
	// Silent logs the failure and leaves the page unchanged.
	Silent
	// Visible logs the failure and shows an inline error message.
	Visible
)

func (m FailureMode) String() string {
	switch m {
	case Silent:
		return "silent"
	case Visible:
		return "visible"
	default:
		return "default"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FailureMode) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "default", "":
		*m = Default
	case "silent":
		*m = Silent
	case "visible":
		*m = Visible
	default:
		return fmt.Errorf("unknown failure mode %q", text)
	}
	return nil
}

// Policy decides how each renderer degrades when its content cannot be
// loaded. The zero Policy behaves like DefaultPolicy.
type Policy struct {
	// DisableProjectFallback renders a visible error instead of the
	// built-in placeholder projects when the project feed fails.
	DisableProjectFallback bool
	// BlogFailure applies when the blog feed fails. Default is Silent.
	BlogFailure FailureMode
	// PostFailure applies when a post body fails. Default is Visible.
	PostFailure FailureMode
}

// DefaultPolicy keeps the project grid populated, leaves the blog grid
// untouched and reports post failures on the page.
func DefaultPolicy() Policy {
	return Policy{
		BlogFailure: Silent,
		PostFailure: Visible,
	}
}

func (p Policy) projectFallback() bool { return !p.DisableProjectFallback }

func (p Policy) blogFailure() FailureMode {
	if p.BlogFailure == Default {
		return Silent
	}
	return p.BlogFailure
}

func (p Policy) postFailure() FailureMode {
	if p.PostFailure == Default {
		return Visible
	}
	return p.PostFailure
}
