package commands

import (
	"fmt"
	"io"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/build"
	berrors "git.home.luguber.info/inful/booknav/internal/errors"
	"git.home.luguber.info/inful/booknav/internal/nav"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Tree   bool `help:"Print the resolved sidebar tree"`
	Strict bool `help:"Fail when the sidebar produced warnings or pages are not linked"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	model, err := build.Prepare(g.context(), cfg)
	if err != nil {
		return err
	}

	out := g.out()
	fmt.Fprintf(out, "%s: %d groups, %d links\n", model.Meta.Title, len(model.Tree.Groups()), model.Tree.Len())
	if v.Tree {
		printTree(out, model.Tree)
	}
	for _, w := range model.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	for _, o := range model.Orphans {
		fmt.Fprintf(out, "orphan: %s\n", o)
	}

	if v.Strict {
		if n := len(model.Warnings) + len(model.Orphans); n > 0 {
			return berrors.ValidationFailed("sidebar", fmt.Sprintf("%d warnings in strict mode", n))
		}
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func printTree(w io.Writer, tree *nav.Tree) {
	tree.Walk(func(n nav.Node, depth int) bool {
		indent := strings.Repeat("  ", depth-1)
		switch n := n.(type) {
		case *nav.Group:
			fmt.Fprintf(w, "%s%s/\n", indent, n.Label)
		case *nav.Link:
			fmt.Fprintf(w, "%s%s -> %s\n", indent, n.Label, n.Target)
		}
		return true
	})
}
