// Package visualize renders a built cfg.Graph as a Mermaid flowchart, per
// the specification's out-of-core but interface-specified visualization
// surface: nodes are labeled by a block's concatenated source snippets,
// edges by their condition's String().
package visualize

import (
	"fmt"
	"strings"

	"github.com/cflowgraph/pycfg/internal/cfg"
)

// Options controls rendering details that don't change the graph's shape.
type Options struct {
	// Direction is the Mermaid flowchart direction, e.g. "TD" (top-down)
	// or "LR" (left-right). Defaults to "TD" when empty.
	Direction string
}

// ToMermaid renders g as a Mermaid flowchart source string. Block labels
// are the newline-joined source text of each block's statements (escaped
// for Mermaid's quoted-label syntax); edges into the terminal block render
// with a heavier arrow, per the specification's "may be drawn thicker."
func ToMermaid(g *cfg.Graph, opts Options) string {
	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "flowchart %s\n", direction)

	for id := 0; id < g.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		fmt.Fprintf(&b, "    %s[%q]\n", nodeName(bid), nodeLabel(g, bid))
	}

	for id := 0; id < g.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		edge := g.Outgoing(bid)
		for i, target := range edge.Targets {
			arrow := "-->"
			if target == g.Terminal() {
				arrow = "==>"
			}
			label := edge.Conditions[i].String()
			if label == "" {
				fmt.Fprintf(&b, "    %s %s %s\n", nodeName(bid), arrow, nodeName(target))
			} else {
				fmt.Fprintf(&b, "    %s %s|%q| %s\n", nodeName(bid), arrow, label, nodeName(target))
			}
		}
	}

	return b.String()
}

func nodeName(id cfg.BlockID) string {
	return fmt.Sprintf("B%d", id)
}

func nodeLabel(g *cfg.Graph, id cfg.BlockID) string {
	stmts := g.Stmts(id)
	if len(stmts) == 0 {
		return fmt.Sprintf("<%s>", g.Kind(id))
	}
	lines := make([]string, len(stmts))
	for i, s := range stmts {
		lines[i] = s.String()
	}
	return strings.Join(lines, "\n")
}
