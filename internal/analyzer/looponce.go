package analyzer

import "github.com/cflowgraph/pycfg/internal/cfg"

// LoopExecutesAtMostOnce implements the worked consumer example from the
// CFG's own documentation: build the graph for a one-statement slice
// containing a single loop, locate the loop guard (the first successor of
// initial) and the loop body (the first successor of the guard), and
// report the loop if the body's own successors never include the guard
// again — i.e. every path through the body falls out of the loop instead
// of looping back.
//
// A guard with no loop-shaped successor (not a LoopGuard block, or one
// with fewer than two outgoing pairs) means graph isn't a single-loop
// slice at all; reports false rather than guessing.
func LoopExecutesAtMostOnce(graph *cfg.Graph) bool {
	guardEdge := graph.Outgoing(graph.Initial())
	if guardEdge.Len() == 0 {
		return false
	}
	guard := guardEdge.Targets[0]
	if graph.Kind(guard) != cfg.LoopGuard {
		return false
	}

	bodyEdge := graph.Outgoing(guard)
	if bodyEdge.Len() < 2 {
		return false
	}
	body := bodyEdge.Targets[0]

	for _, target := range graph.Outgoing(body).Targets {
		if target == guard {
			return false
		}
	}
	return true
}
