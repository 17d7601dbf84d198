package browse

import (
	"log/slog"

	"licensure/internal/domain"
	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
)

const textInputSelector = "input[type='text'], input:not([type])"

// fillStrategy is one independent attempt at populating the search form.
// Strategies are ordered; the first to populate at least one field ends the
// chain.
type fillStrategy struct {
	name string
	fn   func(Container, profile.Profile, domain.SearchQuery) bool
}

var fillStrategies = []fillStrategy{
	{"exact-identifiers", fillByIdentifiers},
	{"label-pattern", fillByLabelPattern},
	{"label-for", fillByLabelFor},
	{"positional", fillPositional},
}

// FillSearch populates the search criteria. The returned flag reports
// whether anything was filled and feeds logging only; an unfilled form still
// proceeds to submission because the UI may default usable criteria.
func FillSearch(c Container, p profile.Profile, q domain.SearchQuery, log *slog.Logger) bool {
	filled := false
	for _, st := range fillStrategies {
		if st.fn(c, p, q) {
			log.Debug("search form populated", "strategy", st.name)
			filled = true
			break
		}
		log.Debug("fill strategy found nothing", "strategy", st.name)
	}

	// Optional controls are best-effort; their absence never aborts the
	// lookup.
	applyMatchMode(c, p, log)
	applyProfessionFilter(c, p, log)

	return filled
}

// fillByIdentifiers matches the recognized field identifiers: a combined
// full-name field, or discrete first/last fields.
func fillByIdentifiers(c Container, p profile.Profile, q domain.SearchQuery) bool {
	if q.FullName != "" {
		for _, sel := range p.FullNameSelectors {
			if n, ok := c.First(sel); ok && n.Fill(q.FullName) == nil {
				return true
			}
		}
	}
	filled := false
	if q.FirstGuess != "" {
		for _, sel := range p.FirstNameSelectors {
			if n, ok := c.First(sel); ok && n.Fill(q.FirstGuess) == nil {
				filled = true
				break
			}
		}
	}
	if q.LastGuess != "" {
		for _, sel := range p.LastNameSelectors {
			if n, ok := c.First(sel); ok && n.Fill(q.LastGuess) == nil {
				filled = true
				break
			}
		}
	}
	return filled
}

// fillByLabelPattern matches placeholder/accessibility text on inputs, then
// label text, against the first/last synonym patterns.
func fillByLabelPattern(c Container, p profile.Profile, q domain.SearchQuery) bool {
	filled := false
	for _, n := range c.All(textInputSelector) {
		hint := n.Attr("placeholder") + " " + n.Attr("aria-label")
		switch {
		case p.FirstSynonyms.MatchString(hint):
			if q.FirstGuess != "" && n.Fill(q.FirstGuess) == nil {
				filled = true
			}
		case p.LastSynonyms.MatchString(hint):
			if q.LastGuess != "" && n.Fill(q.LastGuess) == nil {
				filled = true
			}
		}
	}
	if filled {
		return true
	}
	for _, lab := range c.All("label") {
		value := synonymValue(p, q, normalize.Clean(lab.Text()))
		if value == "" {
			continue
		}
		if next, ok := lab.Following(); ok && next.Fill(value) == nil {
			filled = true
		}
	}
	return filled
}

// fillByLabelFor follows a label's for-target to its input.
func fillByLabelFor(c Container, p profile.Profile, q domain.SearchQuery) bool {
	filled := false
	for _, lab := range c.All("label") {
		value := synonymValue(p, q, normalize.Clean(lab.Text()))
		if value == "" {
			continue
		}
		target := lab.Attr("for")
		if target == "" {
			continue
		}
		if n, ok := c.First("#" + target); ok && n.Fill(value) == nil {
			filled = true
		}
	}
	return filled
}

// fillPositional is the last resort: fill the first one or two visible,
// non-date text inputs. Two inputs read as first/last; a single input takes
// the full name, or the last name when that is all we have.
func fillPositional(c Container, p profile.Profile, q domain.SearchQuery) bool {
	var inputs []Node
	for _, n := range c.All(textInputSelector) {
		if !n.Visible() {
			continue
		}
		hint := n.Attr("name") + " " + n.Attr("id") + " " + n.Attr("placeholder")
		if p.DateHint.MatchString(hint) {
			continue
		}
		inputs = append(inputs, n)
		if len(inputs) == 2 {
			break
		}
	}
	switch len(inputs) {
	case 0:
		return false
	case 1:
		value := q.FullName
		if q.FirstGuess == "" {
			value = q.LastGuess
		}
		if value == "" {
			return false
		}
		return inputs[0].Fill(value) == nil
	default:
		filled := false
		if q.FirstGuess != "" && inputs[0].Fill(q.FirstGuess) == nil {
			filled = true
		}
		if q.LastGuess != "" && inputs[1].Fill(q.LastGuess) == nil {
			filled = true
		}
		return filled
	}
}

func synonymValue(p profile.Profile, q domain.SearchQuery, label string) string {
	switch {
	case p.FirstSynonyms.MatchString(label):
		return q.FirstGuess
	case p.LastSynonyms.MatchString(label):
		return q.LastGuess
	default:
		return ""
	}
}

func applyMatchMode(c Container, p profile.Profile, log *slog.Logger) {
	if p.MatchModeChoice == nil {
		return
	}
	for _, sel := range p.MatchModeSelectors {
		n, ok := c.First(sel)
		if !ok {
			continue
		}
		if err := n.SelectMatching(p.MatchModeChoice); err != nil {
			log.Debug("match mode selection failed", "error", err)
		}
		return
	}
}

func applyProfessionFilter(c Container, p profile.Profile, log *slog.Logger) {
	if p.ProfessionChoice == nil {
		return
	}
	for _, sel := range p.ProfessionSelectors {
		n, ok := c.First(sel)
		if !ok {
			continue
		}
		if err := n.SelectMatching(p.ProfessionChoice); err != nil {
			log.Debug("profession selection failed", "error", err)
			break
		}
		return
	}
	// Some revisions render the filter as clickable text instead of a
	// select control.
	for _, n := range c.All("a, li, label, span") {
		if p.ProfessionChoice.MatchString(normalize.Clean(n.Text())) {
			if err := n.Click(); err != nil {
				log.Debug("profession filter click failed", "error", err)
			}
			return
		}
	}
}
