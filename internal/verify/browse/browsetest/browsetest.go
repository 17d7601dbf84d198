// Package browsetest provides a scriptable in-memory implementation of the
// browse interfaces so pipeline behavior can be tested without a browser.
// Containers hold flat, document-ordered node lists; clicks run caller
// supplied hooks that mutate the fake site, which is enough to replay
// navigation, popups, and in-place expansion.
package browsetest

import (
	"errors"
	"regexp"
	"strings"

	"licensure/internal/verify/browse"
)

// Node is a scriptable DOM element.
type Node struct {
	Tag    string
	ID     string
	Txt    string
	Attrs  map[string]string
	Hidden bool

	// Sib is the explicit next sibling, used for table cells and dt/dd
	// pairs. Following order defaults to the container's node order.
	Sib *Node

	Options []string // options of a select control

	FillErr  error
	ClickErr error
	PressErr error
	OnClick  func()

	// Recorded interactions.
	Value    string
	Pressed  []string
	Selected string

	container *Container
}

func (n *Node) Text() string { return n.Txt }

func (n *Node) Attr(name string) string {
	if name == "id" && n.ID != "" {
		return n.ID
	}
	return n.Attrs[name]
}

func (n *Node) Visible() bool { return !n.Hidden }

func (n *Node) Following() (browse.Node, bool) {
	if n.Sib != nil {
		return n.Sib, true
	}
	if n.container == nil {
		return nil, false
	}
	for i, other := range n.container.nodes {
		if other == n && i+1 < len(n.container.nodes) {
			return n.container.nodes[i+1], true
		}
	}
	return nil, false
}

func (n *Node) NextSibling() (browse.Node, bool) {
	if n.Sib == nil {
		return nil, false
	}
	return n.Sib, true
}

func (n *Node) Fill(value string) error {
	if n.FillErr != nil {
		return n.FillErr
	}
	n.Value = value
	return nil
}

func (n *Node) Click() error {
	if n.ClickErr != nil {
		return n.ClickErr
	}
	if n.OnClick != nil {
		n.OnClick()
	}
	return nil
}

func (n *Node) Press(key string) error {
	if n.PressErr != nil {
		return n.PressErr
	}
	n.Pressed = append(n.Pressed, key)
	return nil
}

func (n *Node) SelectMatching(pattern *regexp.Regexp) error {
	for _, opt := range n.Options {
		if pattern.MatchString(opt) {
			n.Selected = opt
			return nil
		}
	}
	return errors.New("no matching option")
}

// Container is a fake document or frame.
type Container struct {
	Addr  string
	nodes []*Node
}

func NewContainer(url string, nodes ...*Node) *Container {
	c := &Container{Addr: url}
	c.Append(nodes...)
	return c
}

// Append adds nodes in document order, wiring their back reference.
func (c *Container) Append(nodes ...*Node) {
	for _, n := range nodes {
		n.container = c
		c.nodes = append(c.nodes, n)
	}
}

// Replace swaps the whole document, simulating an in-frame navigation.
func (c *Container) Replace(url string, nodes ...*Node) {
	c.Addr = url
	c.nodes = nil
	c.Append(nodes...)
}

func (c *Container) URL() string { return c.Addr }

func (c *Container) First(selector string) (browse.Node, bool) {
	for _, n := range c.nodes {
		if matchSelector(n, selector) {
			return n, true
		}
	}
	return nil, false
}

func (c *Container) All(selector string) []browse.Node {
	var out []browse.Node
	for _, n := range c.nodes {
		if matchSelector(n, selector) {
			out = append(out, n)
		}
	}
	return out
}

// Window is one fake top-level browsing context.
type Window struct {
	Top    *Container
	Frames []*Container
}

// Session is a fake browsing session.
type Session struct {
	NavigateFunc func(url string) error
	NavigatedTo  []string
	Closed       bool

	windows []*Window
}

func NewSession(windows ...*Window) *Session {
	return &Session{windows: windows}
}

// OpenWindow appends a window, as a popup-spawning click hook would.
func (s *Session) OpenWindow(top *Container) *Window {
	w := &Window{Top: top}
	s.windows = append(s.windows, w)
	return w
}

func (s *Session) Navigate(url string) error {
	s.NavigatedTo = append(s.NavigatedTo, url)
	if s.NavigateFunc != nil {
		return s.NavigateFunc(url)
	}
	return nil
}

func (s *Session) Containers() []browse.Container {
	var out []browse.Container
	for _, w := range s.windows {
		out = append(out, w.Top)
		for _, f := range w.Frames {
			out = append(out, f)
		}
	}
	return out
}

func (s *Session) WindowCount() int { return len(s.windows) }

func (s *Session) Window(i int) browse.Container { return s.windows[i].Top }

func (s *Session) Close() { s.Closed = true }

// matchSelector supports the selector grammar the pipeline uses: comma
// lists of simple selectors with an optional tag, #id, [attr='value'],
// [attr], and :not([attr]) parts.
func matchSelector(n *Node, selector string) bool {
	for _, part := range strings.Split(selector, ",") {
		if matchSimple(n, strings.TrimSpace(part)) {
			return true
		}
	}
	return false
}

var (
	attrTerm = regexp.MustCompile(`\[([\w-]+)(?:=['"]?([^'"\]]*)['"]?)?\]`)
	notTerm  = regexp.MustCompile(`:not\(\[([\w-]+)\]\)`)
)

func matchSimple(n *Node, sel string) bool {
	if sel == "" {
		return false
	}
	if strings.HasPrefix(sel, "#") {
		return n.ID == sel[1:]
	}

	rest := sel
	if i := strings.IndexAny(sel, "[:#"); i >= 0 {
		tag := sel[:i]
		rest = sel[i:]
		if tag != "" && !strings.EqualFold(tag, n.Tag) {
			return false
		}
	} else {
		return strings.EqualFold(sel, n.Tag)
	}

	if strings.HasPrefix(rest, "#") {
		j := strings.IndexAny(rest[1:], "[:")
		id := rest[1:]
		if j >= 0 {
			id = rest[1 : 1+j]
			rest = rest[1+j:]
		} else {
			rest = ""
		}
		if n.ID != id {
			return false
		}
	}

	for _, m := range notTerm.FindAllStringSubmatch(rest, -1) {
		if n.Attr(m[1]) != "" {
			return false
		}
	}
	withoutNot := notTerm.ReplaceAllString(rest, "")
	for _, m := range attrTerm.FindAllStringSubmatch(withoutNot, -1) {
		if m[2] == "" && !strings.Contains(m[0], "=") {
			if n.Attr(m[1]) == "" {
				return false
			}
			continue
		}
		if n.Attr(m[1]) != m[2] {
			return false
		}
	}
	return true
}
