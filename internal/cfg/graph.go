package cfg

import "github.com/cflowgraph/pycfg/internal/parser"

// Graph is the read-only, immutable result of Build: a block store plus the
// two distinguished identifiers every graph carries. This is the query
// surface (C7) — no method on Graph mutates it.
type Graph struct {
	store    *store
	initial  BlockID
	terminal BlockID
}

// Initial returns the entry block. No predecessors are guaranteed.
func (g *Graph) Initial() BlockID { return g.initial }

// Terminal returns the unique sink block. Its outgoing edge is always empty.
func (g *Graph) Terminal() BlockID { return g.terminal }

// NumBlocks returns the number of blocks in the graph. Every BlockID handed
// out by Build satisfies 0 <= id < NumBlocks().
func (g *Graph) NumBlocks() int { return g.store.numBlocks() }

// Stmts returns the statement references owned by block id, in order.
func (g *Graph) Stmts(id BlockID) []*parser.Node { return g.store.stmts(id) }

// Outgoing returns block id's single outgoing edge. Terminal's is empty.
func (g *Graph) Outgoing(id BlockID) Edge { return g.store.outgoing(id) }

// Predecessors returns the blocks with an edge targeting id.
func (g *Graph) Predecessors(id BlockID) []BlockID { return g.store.predecessors(id) }

// Kind returns the block-kind tag used to special-case loop guards,
// exception dispatchers, and recovery points.
func (g *Graph) Kind(id BlockID) BlockKind { return g.store.kind(id) }

// Reachable reports whether id is reachable from Initial by forward
// traversal of Outgoing edges. Not every block Build returns is reachable:
// when a return/break/continue is followed by more statements, Build opens
// a fresh block for them that no edge targets, and dead-code detection
// relies on finding exactly those blocks here. It is provided as a
// convenience for tests and for analyses that want a one-off reachable-set
// without building their own worklist.
func (g *Graph) Reachable() map[BlockID]bool {
	seen := make(map[BlockID]bool, g.NumBlocks())
	stack := []BlockID{g.initial}
	for len(stack) > 0 {
		n := len(stack) - 1
		id := stack[n]
		stack = stack[:n]
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, t := range g.Outgoing(id).Targets {
			if !seen[t] {
				stack = append(stack, t)
			}
		}
	}
	return seen
}
