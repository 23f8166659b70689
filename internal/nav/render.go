package nav

// Item is one node of a RenderModel.
type Item struct {
	Kind     NodeKind `json:"type"`
	Label    string   `json:"label"`
	Target   string   `json:"target,omitempty"`
	Active   bool     `json:"active,omitempty"`
	Expanded bool     `json:"expanded,omitempty"`
	Children []Item   `json:"children,omitempty"`
}

// PageLink references a neighbouring page for pagination.
type PageLink struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

// RenderModel is the sidebar as seen from one page.
type RenderModel struct {
	Current    string    `json:"current"`
	Items      []Item    `json:"items"`
	Breadcrumb []string  `json:"breadcrumb,omitempty"`
	Prev       *PageLink `json:"prev,omitempty"`
	Next       *PageLink `json:"next,omitempty"`
}

// HasActive reports whether currentTarget matched a link.
func (m RenderModel) HasActive() bool {
	return m.Current != ""
}

// ActiveCount counts active links in the model.
func (m RenderModel) ActiveCount() int {
	n := 0
	var count func([]Item)
	count = func(items []Item) {
		for _, it := range items {
			if it.Active {
				n++
			}
			count(it.Children)
		}
	}
	count(m.Items)
	return n
}

// Render derives the sidebar for the page identified by currentTarget. It is
// a pure function of its inputs. A target that matches no link yields a model
// with nothing active and every group collapsed.
func Render(tree *Tree, currentTarget string) RenderModel {
	m := RenderModel{Items: []Item{}}
	if tree == nil {
		return m
	}

	target := NormalizeTarget(currentTarget)
	idx, found := tree.byTarget[target]
	if !found {
		target = ""
	}

	m.Items = make([]Item, 0, len(tree.groups))
	for _, g := range tree.groups {
		it, _ := renderNode(g, target)
		m.Items = append(m.Items, it)
	}
	if !found {
		return m
	}

	m.Current = target
	m.Breadcrumb = append([]string(nil), tree.parents[target]...)
	if idx > 0 {
		p := tree.links[idx-1]
		m.Prev = &PageLink{Label: p.Label, Target: p.Target}
	}
	if idx < len(tree.links)-1 {
		n := tree.links[idx+1]
		m.Next = &PageLink{Label: n.Label, Target: n.Target}
	}
	return m
}

// renderNode returns the item and whether it contains the active link.
func renderNode(n Node, target string) (Item, bool) {
	switch v := n.(type) {
	case *Link:
		active := target != "" && v.Target == target
		return Item{Kind: KindLink, Label: v.Label, Target: v.Target, Active: active}, active
	case *Group:
		it := Item{Kind: KindGroup, Label: v.Label, Children: make([]Item, 0, len(v.Children))}
		for _, c := range v.Children {
			child, contains := renderNode(c, target)
			if contains {
				it.Expanded = true
			}
			it.Children = append(it.Children, child)
		}
		return it, it.Expanded
	default:
		panic("nav: unknown node type")
	}
}
