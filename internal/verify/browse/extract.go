package browse

import (
	"regexp"

	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
)

// Details holds the raw field text recovered from a detail view. Dates stay
// unparsed here; normalization is the record builder's job.
type Details struct {
	LicenseNumber string
	Status        string
	IssueDate     string
	ExpiryDate    string
}

// Empty reports whether nothing at all was recovered, which marks the
// candidate as a false match.
func (d Details) Empty() bool {
	return d.LicenseNumber == "" && d.Status == "" && d.IssueDate == "" && d.ExpiryDate == ""
}

// extractStrategy is one independent attempt at reading the value belonging
// to a label. Ordered, first non-empty result wins.
type extractStrategy struct {
	name string
	fn   func(Container, *regexp.Regexp) string
}

var extractStrategies = []extractStrategy{
	{"label-following", extractLabelFollowing},
	{"table-cell", extractTableCell},
	{"definition-list", extractDefinition},
}

// ValueFor recovers the whitespace-normalized value for a labeled field, or
// "" when no strategy finds one.
func ValueFor(c Container, label *regexp.Regexp) string {
	for _, st := range extractStrategies {
		if v := st.fn(c, label); v != "" {
			return v
		}
	}
	return ""
}

// ExtractDetails reads the four license fields from a detail container. A
// view yielding none of them is treated as not found rather than an error:
// the loose candidate matching upstream makes false positives possible and
// this is the guard against them.
func ExtractDetails(c Container, p profile.Profile) (Details, bool) {
	d := Details{
		LicenseNumber: ValueFor(c, p.LicensePattern),
		Status:        ValueFor(c, p.StatusPattern),
		IssueDate:     ValueFor(c, p.IssuedPattern),
		ExpiryDate:    ValueFor(c, p.ExpiryPattern),
	}
	return d, !d.Empty()
}

// extractLabelFollowing finds a label-bearing node and reads the
// structurally-next node's text.
func extractLabelFollowing(c Container, label *regexp.Regexp) string {
	for _, n := range c.All("label, strong, b, span") {
		if !label.MatchString(normalize.Clean(n.Text())) {
			continue
		}
		next, ok := n.Following()
		if !ok {
			continue
		}
		if v := normalize.Clean(next.Text()); v != "" {
			return v
		}
	}
	return ""
}

// extractTableCell finds a matching header or data cell and reads the
// adjacent cell.
func extractTableCell(c Container, label *regexp.Regexp) string {
	for _, n := range c.All("th, td") {
		if !label.MatchString(normalize.Clean(n.Text())) {
			continue
		}
		next, ok := n.NextSibling()
		if !ok {
			continue
		}
		if v := normalize.Clean(next.Text()); v != "" {
			return v
		}
	}
	return ""
}

// extractDefinition finds a matching definition term and reads its paired
// definition.
func extractDefinition(c Container, label *regexp.Regexp) string {
	for _, n := range c.All("dt") {
		if !label.MatchString(normalize.Clean(n.Text())) {
			continue
		}
		next, ok := n.NextSibling()
		if !ok {
			continue
		}
		if v := normalize.Clean(next.Text()); v != "" {
			return v
		}
	}
	return ""
}
