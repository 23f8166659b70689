// Package nav models the sidebar of a documentation site as an ordered tree of
// groups and links, validates it once at startup and derives per-page render
// models from it.
package nav

import "encoding/json"

// NodeKind tags the variant of a Node.
type NodeKind string

const (
	KindLink  NodeKind = "link"
	KindGroup NodeKind = "group"
)

// Node is either a *Link or a *Group. The set is closed; use a type switch.
type Node interface {
	NodeLabel() string
	Kind() NodeKind
	node()
}

// Link points at a single content page.
type Link struct {
	Label  string
	Target string
}

func (l *Link) NodeLabel() string { return l.Label }
func (l *Link) Kind() NodeKind    { return KindLink }
func (*Link) node()               {}

// MarshalJSON emits the tagged form consumed by the page renderer.
func (l *Link) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   NodeKind `json:"type"`
		Label  string   `json:"label"`
		Target string   `json:"target"`
	}{KindLink, l.Label, l.Target})
}

// Group holds an ordered list of child nodes.
type Group struct {
	Label    string
	Children []Node
}

func (g *Group) NodeLabel() string { return g.Label }
func (g *Group) Kind() NodeKind    { return KindGroup }
func (*Group) node()               {}

func (g *Group) MarshalJSON() ([]byte, error) {
	children := g.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Type     NodeKind `json:"type"`
		Label    string   `json:"label"`
		Children []Node   `json:"children"`
	}{KindGroup, g.Label, children})
}

// Tree is the validated navigation hierarchy. It is never mutated after Build
// returns it, so it can be shared by concurrent Render calls.
type Tree struct {
	groups   []*Group
	links    []*Link
	byTarget map[string]int
	parents  map[string][]string
}

// Groups returns the top-level groups in display order.
func (t *Tree) Groups() []*Group {
	out := make([]*Group, len(t.groups))
	copy(out, t.groups)
	return out
}

// Links returns every link in depth-first display order.
func (t *Tree) Links() []*Link {
	out := make([]*Link, len(t.links))
	copy(out, t.links)
	return out
}

// Len reports the number of links in the tree.
func (t *Tree) Len() int { return len(t.links) }

// Lookup finds the link for a target. The target is normalized first.
func (t *Tree) Lookup(target string) (*Link, bool) {
	i, ok := t.byTarget[NormalizeTarget(target)]
	if !ok {
		return nil, false
	}
	return t.links[i], true
}

// Walk visits every node depth-first in display order. depth is 1 for
// top-level groups. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	for _, g := range t.groups {
		walk(g, 1, fn)
	}
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			walk(c, depth+1, fn)
		}
	}
}

// MarshalJSON emits the top-level groups.
func (t *Tree) MarshalJSON() ([]byte, error) {
	groups := t.groups
	if groups == nil {
		groups = []*Group{}
	}
	return json.Marshal(groups)
}
