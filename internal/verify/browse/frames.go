package browse

import (
	"log/slog"

	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
)

// headingSelector covers the elements a tab or section heading renders as.
const headingSelector = "a, h1, h2, h3, li, span"

// FindSearchContainer picks the document or frame hosting the search form.
// Frames are tested in document order against ordered signals: a canonical
// search input first, recognizable tab or heading text second. The first
// frame satisfying any signal wins; the top document is the default when
// none match. Frames only exist after navigation, so this runs once per
// verification call.
func FindSearchContainer(s Session, p profile.Profile) Container {
	containers := s.Containers()
	if len(containers) == 0 {
		return nil
	}
	for _, c := range containers {
		if hasSearchInput(c, p) || hasTabHeading(c, p) {
			return c
		}
	}
	return containers[0]
}

func hasSearchInput(c Container, p profile.Profile) bool {
	for _, sel := range p.SearchInputSelectors {
		if _, ok := c.First(sel); ok {
			return true
		}
	}
	return false
}

func hasTabHeading(c Container, p profile.Profile) bool {
	for _, n := range c.All(headingSelector) {
		if p.TabPattern.MatchString(normalize.Clean(n.Text())) {
			return true
		}
	}
	return false
}

// OpenSearchTab clicks the name-search tab when the UI is tabbed. The tab
// may already be active or not exist at all, so misses are logged and
// swallowed.
func OpenSearchTab(c Container, p profile.Profile, log *slog.Logger) {
	for _, n := range c.All("a, li, button") {
		if !p.TabPattern.MatchString(normalize.Clean(n.Text())) {
			continue
		}
		if err := n.Click(); err != nil {
			log.Debug("search tab click failed", "error", err)
		}
		return
	}
	log.Debug("no search tab found, assuming already active")
}
