package browse

import (
	"log/slog"
	"strings"
	"time"

	"licensure/internal/domain"
	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
)

// MatchResult scans every container, including windows the search opened,
// for a result entry matching the query and opens its detail view. It
// returns the container hosting the detail content.
//
// Matching favors recall over precision: any clickable element containing
// the last-name token is a candidate, and the first one also containing the
// first-name token is preferred, but a last-name-only match is accepted when
// nothing better exists. The scan/wait/rescan cycle is bounded by the
// profile's attempt count with a fixed delay; if the first scan finds
// nothing and no submission signal was confirmed, the form is resubmitted
// once. Exhausting all attempts is a valid not-found outcome.
func MatchResult(s Session, c Container, p profile.Profile, q domain.SearchQuery, submitted bool, log *slog.Logger) (Container, bool) {
	if q.LastGuess == "" {
		return nil, false
	}
	resubmitted := false
	for attempt := 1; attempt <= p.Timing.PollAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(p.Timing.PollDelay)
		}
		candidates := scanCandidates(s, p, q)
		if len(candidates) == 0 {
			log.Debug("no candidates in result scan", "attempt", attempt)
			if attempt == 1 && !submitted && !resubmitted {
				resubmitted = true
				submitted = Submit(c, p, log)
			}
			continue
		}
		chosen := pickCandidate(candidates, q)
		log.Debug("result candidate selected",
			"text", chosen.DisplayText,
			"candidates", len(candidates),
			"attempt", attempt,
		)
		if next, ok := openResult(s, chosen, p, log); ok {
			return next, true
		}
	}
	return nil, false
}

// scanCandidates collects clickable elements whose text contains the
// last-name token, across every frame and window.
func scanCandidates(s Session, p profile.Profile, q domain.SearchQuery) []Candidate {
	var out []Candidate
	for _, c := range s.Containers() {
		for _, sel := range p.ResultSelectors {
			for _, n := range c.All(sel) {
				text := normalize.Clean(n.Text())
				if text == "" || !containsFold(text, q.LastGuess) {
					continue
				}
				out = append(out, Candidate{DisplayText: text, Node: n, container: c})
			}
		}
	}
	return out
}

func pickCandidate(candidates []Candidate, q domain.SearchQuery) Candidate {
	if q.FirstGuess != "" {
		for _, cand := range candidates {
			if containsFold(cand.DisplayText, q.FirstGuess) {
				return cand
			}
		}
	}
	return candidates[0]
}

// openResult clicks the candidate and works out where the detail content
// landed: a new window, the same frame after navigation, or expanded in
// place. All three resolve to the container handed to extraction.
func openResult(s Session, cand Candidate, p profile.Profile, log *slog.Logger) (Container, bool) {
	windowsBefore := s.WindowCount()
	urlBefore := cand.container.URL()

	if err := cand.Node.Click(); err != nil {
		log.Debug("candidate click failed", "text", cand.DisplayText, "error", err)
		return nil, false
	}
	time.Sleep(p.Timing.SettleDelay)

	if n := s.WindowCount(); n > windowsBefore {
		log.Debug("result opened new window")
		return s.Window(n - 1), true
	}
	if cand.container.URL() != urlBefore {
		log.Debug("result navigated in frame")
	} else {
		log.Debug("result expanded in place")
	}
	return cand.container, true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
