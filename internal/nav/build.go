package nav

import (
	"fmt"
	"strings"
)

// Entry is one item of the declarative sidebar: a group when Items is set, a
// link when Slug is set.
type Entry struct {
	Label string  `yaml:"label" toml:"label" json:"label,omitempty"`
	Slug  string  `yaml:"slug,omitempty" toml:"slug,omitempty" json:"slug,omitempty"`
	Items []Entry `yaml:"items,omitempty" toml:"items,omitempty" json:"items,omitempty"`
}

func (e Entry) isGroup() bool { return e.Items != nil }

// placed pairs a built node with the config path it was declared at.
type placed struct {
	node Node
	path string
}

type builder struct {
	opts     Options
	seen     map[string]Location
	links    []*Link
	parents  map[string][]string
	warnings []Warning
}

// Build validates a sidebar declaration and assembles the navigation tree.
// Declaration order is kept at every level. Any error aborts the whole build;
// warnings are only produced by the flatten depth policy.
func Build(decl []Entry, opts Options) (*Tree, []Warning, error) {
	b := &builder{
		opts:    opts.withDefaults(),
		seen:    make(map[string]Location),
		parents: make(map[string][]string),
	}

	root := Location{ConfigPath: "sidebar"}
	for i, e := range decl {
		if !e.isGroup() {
			return nil, nil, &InvalidEntryError{
				At:     root.child(e.Label, fmt.Sprintf("sidebar[%d]", i)),
				Reason: "top-level entries must be groups",
			}
		}
	}

	nodes, err := b.collect(decl, root, 0, "sidebar")
	if err != nil {
		return nil, nil, err
	}
	if err := checkSiblings(root, nodes); err != nil {
		return nil, nil, err
	}

	groups := make([]*Group, 0, len(nodes))
	for _, p := range nodes {
		groups = append(groups, p.node.(*Group))
	}

	byTarget := make(map[string]int, len(b.links))
	for i, l := range b.links {
		byTarget[l.Target] = i
	}
	return &Tree{
		groups:   groups,
		links:    b.links,
		byTarget: byTarget,
		parents:  b.parents,
	}, b.warnings, nil
}

// collect builds the entries of one parent whose group depth is depth.
func (b *builder) collect(items []Entry, parent Location, depth int, prefix string) ([]placed, error) {
	out := make([]placed, 0, len(items))
	for i, e := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)
		nodes, err := b.entry(e, parent, path, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (b *builder) entry(e Entry, parent Location, path string, depth int) ([]placed, error) {
	label := strings.TrimSpace(e.Label)
	at := parent.child(label, path)

	switch {
	case e.isGroup() && e.Slug != "":
		return nil, &InvalidEntryError{At: at, Reason: "entry cannot have both slug and items"}
	case e.isGroup():
		return b.group(e, label, parent, at, depth)
	case strings.TrimSpace(e.Slug) != "":
		return b.link(e, label, parent, at)
	default:
		return nil, &InvalidEntryError{At: at, Reason: "entry needs either a slug or items"}
	}
}

func (b *builder) link(e Entry, label string, parent, at Location) ([]placed, error) {
	target := NormalizeTarget(e.Slug)
	if target == "" {
		return nil, &InvalidEntryError{At: at, Reason: fmt.Sprintf("slug %q does not name a page", e.Slug)}
	}
	if label == "" && b.opts.Titles != nil {
		if title, ok := b.opts.Titles.Title(target); ok {
			label = strings.TrimSpace(title)
			at = parent.child(label, at.ConfigPath)
		}
	}
	if label == "" {
		return nil, &InvalidEntryError{At: at, Reason: fmt.Sprintf("link to %q has no label and the page has no title", target)}
	}
	if first, dup := b.seen[target]; dup {
		return nil, &DuplicateTargetError{Target: target, First: first, Second: at}
	}
	b.seen[target] = at

	l := &Link{Label: label, Target: target}
	b.links = append(b.links, l)
	crumbs := make([]string, len(parent.Labels))
	copy(crumbs, parent.Labels)
	b.parents[target] = crumbs
	return []placed{{node: l, path: at.ConfigPath}}, nil
}

func (b *builder) group(e Entry, label string, parent, at Location, depth int) ([]placed, error) {
	if label == "" {
		return nil, &InvalidEntryError{At: at, Reason: "group label is empty"}
	}
	if len(e.Items) == 0 {
		return nil, &InvalidEntryError{At: at, Reason: "group has no items"}
	}

	if depth > b.opts.MaxDepth {
		if b.opts.DepthPolicy != DepthFlatten {
			return nil, &UnsupportedDepthError{At: at, Depth: depth, MaxDepth: b.opts.MaxDepth}
		}
		b.warnings = append(b.warnings, Warning{
			At:      at,
			Message: fmt.Sprintf("group nested %d levels deep (max %d) was flattened into its parent", depth, b.opts.MaxDepth),
		})
		// The children take the group's place in the parent, so they keep the
		// parent's label path and depth.
		return b.collect(e.Items, Location{Labels: parent.Labels, ConfigPath: at.ConfigPath}, depth-1, at.ConfigPath+".items")
	}

	children, err := b.collect(e.Items, at, depth, at.ConfigPath+".items")
	if err != nil {
		return nil, err
	}
	if err := checkSiblings(at, children); err != nil {
		return nil, err
	}
	nodes := make([]Node, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, c.node)
	}
	return []placed{{node: &Group{Label: label, Children: nodes}, path: at.ConfigPath}}, nil
}

func checkSiblings(parent Location, nodes []placed) error {
	seen := make(map[string]string, len(nodes))
	for _, p := range nodes {
		key := labelKey(p.node.NodeLabel())
		if first, dup := seen[key]; dup {
			return &DuplicateLabelError{
				Parent: parent,
				Label:  p.node.NodeLabel(),
				First:  first,
				Second: p.path,
			}
		}
		seen[key] = p.path
	}
	return nil
}
