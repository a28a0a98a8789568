package analyzer

import (
	"github.com/cflowgraph/pycfg/internal/cfg"
	"github.com/cflowgraph/pycfg/internal/parser"
)

// NeverLoopsReport names one loop guard whose body is provably dead: a
// constant-false while test, or a for whose iterator is a literal empty
// list or tuple. Recovered from the never-runs-body diagnostic the
// specification's distillation dropped, reimplemented here against
// cfg.Graph and the borrowed AST nodes its conditions reference rather
// than translated from its original source.
//
// Graph reachability alone cannot see this: the CFG's edge labels are
// symbolic and never evaluated (§3), so both the body and Else arms of a
// reachable guard are themselves always reachable regardless of whether
// the guarded test could ever actually be true. Spotting a dead loop body
// means inspecting the borrowed Test/Iterator expression directly.
type NeverLoopsReport struct {
	Guard cfg.BlockID
	Body  cfg.BlockID
}

// FindLoopsThatNeverRun scans every reachable LoopGuard block in graph and
// reports the ones whose guarding condition can be proven constant-false
// or constant-empty by simple syntactic inspection.
func FindLoopsThatNeverRun(graph *cfg.Graph) []NeverLoopsReport {
	reachable := graph.Reachable()
	var reports []NeverLoopsReport

	for id := 0; id < graph.NumBlocks(); id++ {
		guard := cfg.BlockID(id)
		if graph.Kind(guard) != cfg.LoopGuard || !reachable[guard] {
			continue
		}

		edge := graph.Outgoing(guard)
		for i, cond := range edge.Conditions {
			if conditionNeverFires(cond) {
				reports = append(reports, NeverLoopsReport{Guard: guard, Body: edge.Targets[i]})
				break
			}
		}
	}

	return reports
}

func conditionNeverFires(cond cfg.Condition) bool {
	switch c := cond.(type) {
	case cfg.Test:
		return isFalseLiteral(c.Expr)
	case cfg.Iterator:
		return isEmptyLiteral(c.Iter)
	default:
		return false
	}
}

func isFalseLiteral(expr *parser.Node) bool {
	if expr == nil {
		return false
	}
	switch expr.Type {
	case parser.NodeConstant:
		b, ok := expr.Value.(bool)
		return ok && !b
	case parser.NodeName:
		return expr.Name == "False"
	default:
		return false
	}
}

func isEmptyLiteral(expr *parser.Node) bool {
	if expr == nil {
		return false
	}
	switch expr.Type {
	case parser.NodeList, parser.NodeTuple:
		return len(expr.Children) == 0
	default:
		return false
	}
}
