package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cflowgraph/pycfg/internal/cfg"
	"github.com/cflowgraph/pycfg/internal/parser"
)

func name(n string) *parser.Node {
	node := parser.NewNode(parser.NodeName)
	node.Name = n
	return node
}

func whileLoop(test *parser.Node, body []*parser.Node) *parser.Node {
	n := parser.NewNode(parser.NodeWhile)
	n.Test = test
	n.Body = body
	return n
}

func buildOne(t *testing.T, stmt *parser.Node) *cfg.Graph {
	t.Helper()
	g, err := cfg.NewBuilder().Build([]*parser.Node{stmt})
	require.NoError(t, err)
	return g
}

func TestLoopExecutesAtMostOnce_LoopsAgain(t *testing.T) {
	pass := parser.NewNode(parser.NodePass)
	g := buildOne(t, whileLoop(name("cond"), []*parser.Node{pass}))
	require.False(t, LoopExecutesAtMostOnce(g), "natural fall-through re-enters the guard")
}

func TestLoopExecutesAtMostOnce_BreaksOut(t *testing.T) {
	brk := parser.NewNode(parser.NodeBreak)
	g := buildOne(t, whileLoop(name("cond"), []*parser.Node{brk}))
	require.True(t, LoopExecutesAtMostOnce(g), "break leaves the loop without re-entering the guard")
}

func TestLoopExecutesAtMostOnce_NonLoopInput(t *testing.T) {
	g := buildOne(t, parser.NewNode(parser.NodePass))
	require.False(t, LoopExecutesAtMostOnce(g))
}
