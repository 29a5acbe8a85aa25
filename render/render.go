// Package render prints the key sequences produced by a tree traversal.
package render

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/Aasim-A/btree/btree"
	"github.com/fatih/color"
	"github.com/xlab/treeprint"
)

// Source is what the renderer needs from a tree.
type Source interface {
	All() iter.Seq[int]
	Nodes(order btree.TraversalOrder) iter.Seq[btree.NodeView]
}

type Renderer struct {
	leaf     *color.Color
	internal *color.Color
}

func New(colored bool) *Renderer {
	r := &Renderer{
		leaf:     color.New(color.FgGreen),
		internal: color.New(color.FgCyan, color.Bold),
	}

	for _, c := range []*color.Color{r.leaf, r.internal} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return r
}

// InOrder writes all keys in ascending order on one line.
func (r *Renderer) InOrder(w io.Writer, src Source) error {
	var sb strings.Builder
	for key := range src.All() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, key)
	}

	_, err := fmt.Fprintln(w, sb.String())
	return err
}

// PostOrder writes every node's keys, children before parents, on one line.
func (r *Renderer) PostOrder(w io.Writer, src Source) error {
	var nodes []string
	for view := range src.Nodes(btree.PostOrder) {
		nodes = append(nodes, r.label(view))
	}

	_, err := fmt.Fprintln(w, strings.Join(nodes, " "))
	return err
}

// Structure returns the tree drawn one node per line, indented by depth.
func (r *Renderer) Structure(src Source) string {
	var levels []treeprint.Tree
	for view := range src.Nodes(btree.PreOrder) {
		label := r.label(view)
		if view.Depth == 0 {
			levels = []treeprint.Tree{treeprint.NewWithRoot(label)}
			continue
		}

		parent := levels[view.Depth-1]
		levels = levels[:view.Depth]
		if view.Leaf {
			parent.AddNode(label)
			continue
		}
		levels = append(levels, parent.AddBranch(label))
	}

	if len(levels) == 0 {
		return ""
	}

	return levels[0].String()
}

func (r *Renderer) label(view btree.NodeView) string {
	text := fmt.Sprint(view.Keys)
	if view.Leaf {
		return r.leaf.Sprint(text)
	}

	return r.internal.Sprint(text)
}
