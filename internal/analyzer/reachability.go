package analyzer

import (
	"time"

	"github.com/cflowgraph/pycfg/internal/cfg"
)

// ReachabilityReport contains the results of reachability analysis.
type ReachabilityReport struct {
	TotalBlocks       int
	ReachableBlocks   int
	UnreachableBlocks int
	UnreachableList   []cfg.BlockID
	AnalysisTime      time.Duration
}

// ReachabilityAnalyzer performs reachability analysis on a Graph.
type ReachabilityAnalyzer struct {
	graph *cfg.Graph
}

// NewReachabilityAnalyzer creates a new reachability analyzer for a Graph.
func NewReachabilityAnalyzer(graph *cfg.Graph) *ReachabilityAnalyzer {
	return &ReachabilityAnalyzer{graph: graph}
}

// AnalyzeReachability performs the reachability analysis.
func (ra *ReachabilityAnalyzer) AnalyzeReachability() *ReachabilityReport {
	start := time.Now()

	reachable := ra.graph.Reachable()

	report := &ReachabilityReport{
		TotalBlocks:     ra.graph.NumBlocks(),
		ReachableBlocks: len(reachable),
		AnalysisTime:    time.Since(start),
	}

	for id := 0; id < ra.graph.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		if !reachable[bid] {
			report.UnreachableList = append(report.UnreachableList, bid)
		}
	}
	report.UnreachableBlocks = len(report.UnreachableList)

	return report
}

// UnreachableExceptHandlers reports handler targets of ExceptHandler
// conditions that Reachable() never visits (typically because the try body
// that would raise into their dispatch block is itself dead). This extends
// the plain block-reachability sweep above with a check pyscn's version
// does not have.
func (ra *ReachabilityAnalyzer) UnreachableExceptHandlers() []cfg.BlockID {
	reachable := ra.graph.Reachable()
	var unreachable []cfg.BlockID

	for id := 0; id < ra.graph.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		if ra.graph.Kind(bid) != cfg.ExceptionDispatch {
			continue
		}
		edge := ra.graph.Outgoing(bid)
		for i, cond := range edge.Conditions {
			if _, ok := cond.(cfg.ExceptHandler); !ok {
				continue
			}
			target := edge.Targets[i]
			if !reachable[target] {
				unreachable = append(unreachable, target)
			}
		}
	}

	return unreachable
}
