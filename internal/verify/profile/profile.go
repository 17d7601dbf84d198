// Package profile describes one licensing-board site as configuration. The
// remote UI is not a protocol: field names, labels, and frame layout may
// reorganize at any time, so everything the pipeline looks for lives here
// instead of being baked into the stages. A new jurisdiction is a new
// Profile value, not a forked pipeline.
package profile

import (
	"regexp"
	"time"
)

// Timing holds the empirically tuned constants for one site. They carry no
// deeper rationale than having worked against the live UI; keep them
// overridable rather than embedded.
type Timing struct {
	// ActionTimeout bounds every interactive browser action.
	ActionTimeout time.Duration
	// PollDelay separates result-list scan attempts.
	PollDelay time.Duration
	// PollAttempts bounds the scan/wait/rescan cycle.
	PollAttempts int
	// SettleDelay gives the page time to react after a result click before
	// the transition is classified.
	SettleDelay time.Duration
}

// DefaultTiming matches the values tuned against the Utah lookup.
func DefaultTiming() Timing {
	return Timing{
		ActionTimeout: 8 * time.Second,
		PollDelay:     1500 * time.Millisecond,
		PollAttempts:  3,
		SettleDelay:   800 * time.Millisecond,
	}
}

// Profile is the complete observed shape of one search UI.
type Profile struct {
	State     string
	SearchURL string

	// SearchInputSelectors mark the frame hosting the search form.
	SearchInputSelectors []string
	// TabPattern recognizes the name-search tab or heading.
	TabPattern *regexp.Regexp

	// Field identifiers, tried before any pattern matching.
	FullNameSelectors  []string
	FirstNameSelectors []string
	LastNameSelectors  []string

	// Synonym patterns for label, placeholder, and accessibility text.
	FirstSynonyms *regexp.Regexp
	LastSynonyms  *regexp.Regexp
	// DateHint excludes date inputs from the positional fallback.
	DateHint *regexp.Regexp

	SubmitPattern *regexp.Regexp

	// Optional controls; their absence never aborts a lookup.
	MatchModeSelectors  []string
	MatchModeChoice     *regexp.Regexp
	ProfessionSelectors []string
	ProfessionChoice    *regexp.Regexp

	// ResultSelectors pick the text-bearing, clickable elements scanned for
	// candidates.
	ResultSelectors []string

	// Detail-page label patterns.
	LicensePattern *regexp.Regexp
	StatusPattern  *regexp.Regexp
	IssuedPattern  *regexp.Regexp
	ExpiryPattern  *regexp.Regexp

	Timing Timing
}

// Utah is the built-in profile for the Utah DOPL licensee lookup, the
// jurisdiction the pipeline was originally tuned against.
func Utah() Profile {
	return Profile{
		State:     "UT",
		SearchURL: "https://secure.utah.gov/llv/search/index.html#",

		SearchInputSelectors: []string{
			"input[name='lastName']",
			"input[name='fullName']",
		},
		TabPattern: regexp.MustCompile(`(?i)name search`),

		FullNameSelectors:  []string{"input[name='fullName']", "input[name='name']"},
		FirstNameSelectors: []string{"input[name='firstName']"},
		LastNameSelectors:  []string{"input[name='lastName']"},

		FirstSynonyms: regexp.MustCompile(`(?i)\b(first|given)\b`),
		LastSynonyms:  regexp.MustCompile(`(?i)\b(last|family|surname)\b`),
		DateHint:      regexp.MustCompile(`(?i)date|dob|birth`),

		SubmitPattern: regexp.MustCompile(`(?i)search`),

		MatchModeSelectors: []string{"select[name='searchType']", "select[name='matchType']"},
		MatchModeChoice:    regexp.MustCompile(`(?i)contains`),
		ProfessionSelectors: []string{
			"select[name='profession']",
			"select[name='licenseType']",
		},
		ProfessionChoice: regexp.MustCompile(`(?i)physician.*surgeon`),

		ResultSelectors: []string{"a", "tr", "button"},

		LicensePattern: regexp.MustCompile(`(?i)license (number|#)`),
		StatusPattern:  regexp.MustCompile(`(?i)status`),
		IssuedPattern:  regexp.MustCompile(`(?i)issue date|original date`),
		ExpiryPattern:  regexp.MustCompile(`(?i)expiration|expiry|expires`),

		Timing: DefaultTiming(),
	}
}
