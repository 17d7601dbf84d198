package session

import (
	"errors"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"

	"licensure/internal/verify/browse"
)

// maxNodes caps enumeration so a degenerate page cannot stall a scan.
const maxNodes = 200

// container adapts a playwright frame. The top document is just the main
// frame, so one type covers both.
type container struct {
	frame playwright.Frame
}

func (c *container) URL() string { return c.frame.URL() }

func (c *container) First(selector string) (browse.Node, bool) {
	loc := c.frame.Locator(selector)
	count, err := loc.Count()
	if err != nil || count == 0 {
		return nil, false
	}
	return &node{loc: loc.First()}, true
}

func (c *container) All(selector string) []browse.Node {
	loc := c.frame.Locator(selector)
	count, err := loc.Count()
	if err != nil {
		return nil
	}
	if count > maxNodes {
		count = maxNodes
	}
	out := make([]browse.Node, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, &node{loc: loc.Nth(i)})
	}
	return out
}

// node adapts a playwright locator. Reads swallow driver errors into zero
// values: a node that cannot be read is indistinguishable from an absent
// one, which is exactly how the strategy chains treat it.
type node struct {
	loc playwright.Locator
}

func (n *node) Text() string {
	text, err := n.loc.TextContent()
	if err != nil {
		return ""
	}
	return text
}

func (n *node) Attr(name string) string {
	value, err := n.loc.GetAttribute(name)
	if err != nil {
		return ""
	}
	return value
}

func (n *node) Visible() bool {
	visible, err := n.loc.IsVisible()
	return err == nil && visible
}

func (n *node) Following() (browse.Node, bool) {
	return n.relative("xpath=following::*[1]")
}

func (n *node) NextSibling() (browse.Node, bool) {
	return n.relative("xpath=following-sibling::*[1]")
}

func (n *node) relative(selector string) (browse.Node, bool) {
	loc := n.loc.Locator(selector)
	count, err := loc.Count()
	if err != nil || count == 0 {
		return nil, false
	}
	return &node{loc: loc.First()}, true
}

func (n *node) Fill(value string) error {
	return n.loc.Fill(value)
}

func (n *node) Click() error {
	return n.loc.Click()
}

func (n *node) Press(key string) error {
	return n.loc.Press(key)
}

func (n *node) SelectMatching(pattern *regexp.Regexp) error {
	options := n.loc.Locator("option")
	count, err := options.Count()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		text, err := options.Nth(i).TextContent()
		if err != nil {
			continue
		}
		if !pattern.MatchString(strings.TrimSpace(text)) {
			continue
		}
		_, err = n.loc.SelectOption(playwright.SelectOptionValues{
			Indexes: &[]int{i},
		})
		return err
	}
	return errors.New("no matching option")
}
