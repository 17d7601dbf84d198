// Package browse implements the DOM side of license verification: locating
// the search frame, filling the form, submitting it, matching a result, and
// extracting labeled detail fields.
//
// Every stage works against the narrow Node/Container/Session interfaces
// below rather than a concrete browser, which keeps the strategy chains pure
// reads and testable without a live browser. The playwright-backed
// implementation lives in internal/verify/session; a scripted fake lives in
// browsetest.
package browse

import "regexp"

// Node is one element in a document. Read methods report absence with zero
// values; a strategy that finds nothing is an expected outcome, not an
// error. Action methods return errors so callers can fall back.
type Node interface {
	// Text returns the element's text content, unnormalized.
	Text() string
	// Attr returns an attribute value, "" when absent.
	Attr(name string) string
	Visible() bool

	// Following returns the next element in document order.
	Following() (Node, bool)
	// NextSibling returns the next sibling element, the adjacent cell for
	// table rows and the dd for a dt.
	NextSibling() (Node, bool)

	Fill(value string) error
	Click() error
	Press(key string) error
	// SelectMatching chooses the first option of a select control whose
	// text matches the pattern.
	SelectMatching(pattern *regexp.Regexp) error
}

// Container is the document or nested frame currently targeted for search,
// fill, and extract operations. Stages receive and return containers
// explicitly; frame and popup handoffs are typed transitions.
type Container interface {
	// First returns the first node matching a CSS selector.
	First(selector string) (Node, bool)
	// All returns every matching node in document order.
	All(selector string) []Node
	URL() string
}

// Session is one isolated browsing session scoped to a single verification
// call.
type Session interface {
	Navigate(url string) error
	// Containers enumerates every reachable container: each window's top
	// document followed by its nested frames, windows in open order.
	Containers() []Container
	// WindowCount and Window expose top-level windows so the result matcher
	// can detect a click that opened a new one.
	WindowCount() int
	Window(i int) Container
	Close()
}

// Candidate is an element considered a possible result-list entry. It is
// ephemeral, valid only while its session is open.
type Candidate struct {
	DisplayText string
	Node        Node

	container Container
}
