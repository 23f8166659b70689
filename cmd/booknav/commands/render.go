package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/build"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Page   string `required:"" help:"Target slug of the current page"`
	Format string `enum:"text,json" default:"text" help:"Output format (text|json)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	model, err := build.Prepare(g.context(), cfg)
	if err != nil {
		return err
	}
	pm, err := model.Page(r.Page)
	if err != nil {
		return err
	}

	if r.Format == "json" {
		enc := json.NewEncoder(g.out())
		enc.SetIndent("", "  ")
		return enc.Encode(pm)
	}
	writePage(g.out(), pm)
	return nil
}

func writePage(w io.Writer, pm build.PageModel) {
	fmt.Fprintf(w, "%s (%s)\n", pm.Title, pm.URL)
	if pm.EditURL != "" {
		fmt.Fprintf(w, "edit: %s\n", pm.EditURL)
	}
	if len(pm.Sidebar.Breadcrumb) > 0 {
		fmt.Fprintf(w, "path: %s\n", strings.Join(pm.Sidebar.Breadcrumb, " / "))
	}
	fmt.Fprintln(w)
	writeItems(w, pm.Sidebar.Items, 0)

	if pm.Sidebar.Prev != nil || pm.Sidebar.Next != nil {
		fmt.Fprintln(w)
	}
	if p := pm.Sidebar.Prev; p != nil {
		fmt.Fprintf(w, "prev: %s (%s)\n", p.Label, p.Target)
	}
	if n := pm.Sidebar.Next; n != nil {
		fmt.Fprintf(w, "next: %s (%s)\n", n.Label, n.Target)
	}

	if len(pm.Outline) > 0 {
		fmt.Fprintln(w, "\noutline:")
		base := pm.Outline[0].Level
		for _, h := range pm.Outline {
			if h.Level < base {
				base = h.Level
			}
		}
		for _, h := range pm.Outline {
			fmt.Fprintf(w, "%s- %s #%s\n", strings.Repeat("  ", h.Level-base), h.Text, h.ID)
		}
	}
}

// writeItems marks the active link with '>' and collapsed groups with '+'.
func writeItems(w io.Writer, items []nav.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		switch it.Kind {
		case nav.KindGroup:
			mark := "+"
			if it.Expanded {
				mark = "-"
			}
			fmt.Fprintf(w, "%s%s %s\n", indent, mark, it.Label)
			writeItems(w, it.Children, depth+1)
		default:
			mark := " "
			if it.Active {
				mark = ">"
			}
			fmt.Fprintf(w, "%s%s %s\n", indent, mark, it.Label)
		}
	}
}
