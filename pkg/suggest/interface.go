// Package suggest ranks query completions for a typed prefix, personalized by the
// typist's behavioral profile.
package suggest

import (
	"github.com/bastiangx/adaptserve/pkg/behavior"
	"github.com/bastiangx/adaptserve/pkg/policy"
)

// ISuggester defines the interface for profile-aware suggestion engines
type ISuggester interface {
	// Suggest returns ranked, styled suggestions for what userID has typed so far
	Suggest(userID, prefix string) Result

	// Disabled returns the empty result for a user who switched autosuggest off
	Disabled(userID string) Result

	// Config returns the autosuggest config derived for userID
	Config(userID string) policy.Config

	// Profile returns the behavioral profile of userID, nil when unknown
	Profile(userID string) *behavior.UserProfile
}

var _ ISuggester = (*Engine)(nil)
