package browse

import (
	"log/slog"

	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
)

const actionSelector = "button, input[type='submit'], input[type='button'], a"

// Submit triggers the search. It clicks the primary action control matching
// the submit pattern; if no control clicks, it falls back to a keyboard
// submit on the active field. The return value only says whether a
// submission signal was sent — the caller polls for results regardless,
// because completion is governed by the UI's own latency.
func Submit(c Container, p profile.Profile, log *slog.Logger) bool {
	for _, n := range c.All(actionSelector) {
		text := normalize.Clean(n.Text())
		if text == "" {
			text = n.Attr("value")
		}
		if !p.SubmitPattern.MatchString(text) {
			continue
		}
		if err := n.Click(); err != nil {
			log.Debug("submit control click failed", "control", text, "error", err)
			continue
		}
		return true
	}

	if n, ok := c.First(textInputSelector); ok {
		if err := n.Press("Enter"); err == nil {
			return true
		}
		log.Debug("keyboard submit failed")
	}
	return false
}
