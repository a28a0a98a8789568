package analyzer

import (
	"fmt"

	"github.com/cflowgraph/pycfg/internal/cfg"
	"github.com/cflowgraph/pycfg/internal/config"
)

// ComplexityResult holds cyclomatic complexity metrics for a single graph.
type ComplexityResult struct {
	// McCabe cyclomatic complexity: E - N + 2P.
	Complexity int

	// Raw CFG metrics.
	Edges               int
	Nodes               int
	ConnectedComponents int

	FunctionName string

	// Decision points broken down by the condition kind driving them.
	IfStatements      int
	LoopStatements    int
	ExceptionHandlers int
	SwitchCases       int

	RiskLevel string
}

func (cr *ComplexityResult) GetComplexity() int      { return cr.Complexity }
func (cr *ComplexityResult) GetFunctionName() string { return cr.FunctionName }
func (cr *ComplexityResult) GetRiskLevel() string    { return cr.RiskLevel }

func (cr *ComplexityResult) GetDetailedMetrics() map[string]int {
	return map[string]int{
		"nodes":              cr.Nodes,
		"edges":              cr.Edges,
		"if_statements":      cr.IfStatements,
		"loop_statements":    cr.LoopStatements,
		"exception_handlers": cr.ExceptionHandlers,
		"switch_cases":       cr.SwitchCases,
	}
}

func (cr *ComplexityResult) String() string {
	return fmt.Sprintf("Function: %s, Complexity: %d, Risk: %s", cr.FunctionName, cr.Complexity, cr.RiskLevel)
}

// CalculateComplexity computes McCabe cyclomatic complexity for a graph
// using default thresholds.
func CalculateComplexity(name string, g *cfg.Graph) *ComplexityResult {
	defaultConfig := config.DefaultConfig()
	return CalculateComplexityWithConfig(name, g, &defaultConfig.Complexity)
}

// CalculateComplexityWithConfig computes McCabe cyclomatic complexity
// (E - N + 2P, a single connected component per graph so P=1) by walking
// every block's Outgoing edge once and counting each (condition, target)
// pair as one edge. Test/Iterator/Match/ExceptHandler conditions are
// tallied by kind for the breakdown fields; Always and Else contribute to
// the edge count but not to any decision-point bucket, matching McCabe's
// rule that only branching, not straight-line fall-through, adds complexity.
func CalculateComplexityWithConfig(name string, g *cfg.Graph, complexityConfig *config.ComplexityConfig) *ComplexityResult {
	if g == nil {
		return &ComplexityResult{Complexity: 0, RiskLevel: "low"}
	}

	var edges, ifStmts, loopStmts, exceptHandlers, switchCases int

	for id := 0; id < g.NumBlocks(); id++ {
		bid := cfg.BlockID(id)
		edge := g.Outgoing(bid)
		edges += edge.Len()

		switch g.Kind(bid) {
		case cfg.LoopGuard:
			loopStmts++
		case cfg.ExceptionDispatch:
			for _, c := range edge.Conditions {
				if _, ok := c.(cfg.ExceptHandler); ok {
					exceptHandlers++
				}
			}
		}

		for _, c := range edge.Conditions {
			switch c.(type) {
			case cfg.Test:
				ifStmts++
			case cfg.Match:
				switchCases++
			}
		}
	}

	nodes := g.NumBlocks()
	complexity := edges - nodes + 2
	if complexity < 1 {
		complexity = 1
	}

	return &ComplexityResult{
		Complexity:          complexity,
		Edges:               edges,
		Nodes:               nodes,
		ConnectedComponents: 1,
		FunctionName:        name,
		IfStatements:        ifStmts,
		LoopStatements:      loopStmts,
		ExceptionHandlers:   exceptHandlers,
		SwitchCases:         switchCases,
		RiskLevel:           complexityConfig.AssessRiskLevel(complexity),
	}
}

// NamedGraph pairs a graph with the function name it was built for, the
// unit CalculateFileComplexity works over.
type NamedGraph struct {
	Name  string
	Graph *cfg.Graph
}

// CalculateFileComplexity calculates complexity for every graph in a file.
func CalculateFileComplexity(graphs []NamedGraph) []*ComplexityResult {
	defaultConfig := config.DefaultConfig()
	return CalculateFileComplexityWithConfig(graphs, &defaultConfig.Complexity)
}

// CalculateFileComplexityWithConfig calculates complexity using provided configuration.
func CalculateFileComplexityWithConfig(graphs []NamedGraph, complexityConfig *config.ComplexityConfig) []*ComplexityResult {
	results := make([]*ComplexityResult, 0, len(graphs))

	for _, ng := range graphs {
		if ng.Graph == nil {
			continue
		}
		result := CalculateComplexityWithConfig(ng.Name, ng.Graph, complexityConfig)
		if complexityConfig.ShouldReport(result.Complexity) {
			results = append(results, result)
		}
	}

	return results
}

// AggregateComplexity calculates aggregate metrics for multiple functions
type AggregateComplexity struct {
	TotalFunctions    int
	AverageComplexity float64
	MaxComplexity     int
	MinComplexity     int
	HighRiskCount     int
	MediumRiskCount   int
	LowRiskCount      int
}

// CalculateAggregateComplexity computes aggregate complexity metrics
func CalculateAggregateComplexity(results []*ComplexityResult) *AggregateComplexity {
	if len(results) == 0 {
		return &AggregateComplexity{}
	}

	agg := &AggregateComplexity{
		TotalFunctions: len(results),
		MinComplexity:  results[0].Complexity,
		MaxComplexity:  results[0].Complexity,
	}

	totalComplexity := 0

	for _, result := range results {
		totalComplexity += result.Complexity

		if result.Complexity > agg.MaxComplexity {
			agg.MaxComplexity = result.Complexity
		}
		if result.Complexity < agg.MinComplexity {
			agg.MinComplexity = result.Complexity
		}

		switch result.RiskLevel {
		case "high":
			agg.HighRiskCount++
		case "medium":
			agg.MediumRiskCount++
		case "low":
			agg.LowRiskCount++
		}
	}

	agg.AverageComplexity = float64(totalComplexity) / float64(len(results))

	return agg
}
